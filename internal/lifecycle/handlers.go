package lifecycle

import (
	"strings"

	"anilhas-backend/internal/access"
	"anilhas-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers holds dependencies for lifecycle endpoints.
type Handlers struct {
	Service *Service
	Gate    *access.Gate
}

// AssignRings POST /api/v1/admin/assign-rings — admin assigns pool rings to a producer.
func (h *Handlers) AssignRings(c *fiber.Ctx) error {
	var body struct {
		Rings      []string `json:"rings"`
		ProducerID string   `json:"producer_id"`
		WeightKg   *float64 `json:"weight_kg"`
		Notes      *string  `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	producerID, err := uuid.Parse(body.ProducerID)
	if err != nil {
		return response.Error(c, "Invalid producer_id", fiber.StatusBadRequest, nil)
	}

	count, err := h.Service.AssignRings(c.Context(), AssignInput{
		Rings:      body.Rings,
		ProducerID: producerID,
		WeightKg:   weightFromFloat(body.WeightKg),
		Notes:      body.Notes,
	})
	if err != nil {
		return lifecycleError(c, err, true)
	}
	return response.Success(c, "Rings assigned", fiber.Map{"count": count}, nil)
}

// AssignCurrentMonth POST /api/v1/movements/assign-current-month — producer
// self-service intake, restricted to the current calendar month's batch.
func (h *Handlers) AssignCurrentMonth(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		Rings     []string `json:"rings"`
		RingsText string   `json:"rings_text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	ringList := body.Rings
	if len(ringList) == 0 && body.RingsText != "" {
		ringList = ParseRingList(body.RingsText)
	}

	count, err := h.Service.AssignRingsCurrentMonth(c.Context(), actor, ringList)
	if err != nil {
		return lifecycleError(c, err, false)
	}
	return response.Success(c, "Rings assigned", fiber.Map{"count": count}, nil)
}

// Exit POST /api/v1/movements/exit — single ring, fails fast.
func (h *Handlers) Exit(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		RingNumber string   `json:"ring_number"`
		Reason     string   `json:"reason"`
		WeightKg   *float64 `json:"weight_kg"`
		Notes      *string  `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	ring := strings.ToUpper(strings.TrimSpace(body.RingNumber))
	if ring == "" {
		return response.Error(c, "ring_number is required", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.ExitRooster(c.Context(), actor, ring, body.Reason, weightFromFloat(body.WeightKg), body.Notes); err != nil {
		return lifecycleError(c, err, actor.IsAdmin())
	}
	return response.Success(c, "Exit registered", fiber.Map{"ok": true}, nil)
}

// ExitDetailed POST /api/v1/movements/exit-detailed — bulk exit with required
// per-item weight; validation rejects the whole batch before any write.
func (h *Handlers) ExitDetailed(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		Items []struct {
			RingNumber string   `json:"ring_number"`
			Reason     string   `json:"reason"`
			WeightKg   *float64 `json:"weight_kg"`
		} `json:"items"`
		Notes *string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}

	items := make([]ExitItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, ExitItem{
			RingNumber: strings.ToUpper(strings.TrimSpace(it.RingNumber)),
			Reason:     it.Reason,
			WeightKg:   weightFromFloat(it.WeightKg),
		})
	}

	count, err := h.Service.ExitRoostersDetailed(c.Context(), actor, items, body.Notes)
	if err != nil {
		return lifecycleError(c, err, actor.IsAdmin())
	}
	return response.Success(c, "Exits registered", fiber.Map{"count": count}, nil)
}

// Transfer POST /api/v1/movements/transfer — single ring, fails fast.
func (h *Handlers) Transfer(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		RingNumber   string   `json:"ring_number"`
		ToProducerID string   `json:"to_producer_id"`
		Reason       string   `json:"reason"`
		WeightKg     *float64 `json:"weight_kg"`
		Notes        *string  `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}
	ring := strings.ToUpper(strings.TrimSpace(body.RingNumber))
	if ring == "" {
		return response.Error(c, "ring_number is required", fiber.StatusBadRequest, nil)
	}
	toProducerID, err := uuid.Parse(body.ToProducerID)
	if err != nil {
		return response.Error(c, "Invalid to_producer_id", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.TransferRooster(c.Context(), actor, ring, toProducerID, body.Reason, weightFromFloat(body.WeightKg), body.Notes); err != nil {
		return lifecycleError(c, err, actor.IsAdmin())
	}
	return response.Success(c, "Transfer registered", fiber.Map{"ok": true}, nil)
}

// TransferDetailed POST /api/v1/movements/transfer-detailed — bulk transfer
// with a per-item report. Accepts explicit items, or free-form delimited text
// plus a default destination/reason applied to every parsed ring.
func (h *Handlers) TransferDetailed(c *fiber.Ctx) error {
	actor, err := h.Gate.Resolve(c)
	if err != nil {
		return gateError(c, err)
	}

	var body struct {
		Items []struct {
			RingNumber   string   `json:"ring_number"`
			ToProducerID string   `json:"to_producer_id"`
			Reason       string   `json:"reason"`
			WeightKg     *float64 `json:"weight_kg"`
		} `json:"items"`
		RingsText    string  `json:"rings_text"`
		ToProducerID string  `json:"to_producer_id"`
		Reason       string  `json:"reason"`
		WeightKg     *string `json:"weight_kg"`
		Notes        *string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid body", fiber.StatusBadRequest, nil)
	}

	var items []TransferItem
	if len(body.Items) > 0 {
		items = make([]TransferItem, 0, len(body.Items))
		for _, it := range body.Items {
			toID, err := uuid.Parse(it.ToProducerID)
			if err != nil {
				return response.Error(c, "Invalid to_producer_id for ring "+it.RingNumber, fiber.StatusBadRequest, nil)
			}
			items = append(items, TransferItem{
				RingNumber:   strings.ToUpper(strings.TrimSpace(it.RingNumber)),
				ToProducerID: toID,
				Reason:       it.Reason,
				WeightKg:     weightFromFloat(it.WeightKg),
			})
		}
	} else {
		toID, err := uuid.Parse(body.ToProducerID)
		if err != nil {
			return response.Error(c, "Invalid to_producer_id", fiber.StatusBadRequest, nil)
		}
		var weight *decimal.Decimal
		if body.WeightKg != nil && strings.TrimSpace(*body.WeightKg) != "" {
			w, err := parseWeightString(*body.WeightKg)
			if err != nil {
				return response.Error(c, ErrInvalidWeight.Error(), fiber.StatusBadRequest, nil)
			}
			weight = w
		}
		for _, ring := range ParseRingList(body.RingsText) {
			items = append(items, TransferItem{
				RingNumber:   ring,
				ToProducerID: toID,
				Reason:       body.Reason,
				WeightKg:     weight,
			})
		}
	}

	report, err := h.Service.TransferRoostersDetailed(c.Context(), actor, items, body.Notes)
	if err != nil {
		return lifecycleError(c, err, actor.IsAdmin())
	}
	return response.Success(c, "Transfers processed", report, nil)
}

// parseWeightString parses a weight accepting both "3.5" and "3,5".
func parseWeightString(s string) (*decimal.Decimal, error) {
	w, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return nil, ErrInvalidWeight
	}
	if !w.IsPositive() {
		return nil, ErrInvalidWeight
	}
	return &w, nil
}

func weightFromFloat(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// lifecycleError maps service errors to the standard error body. Raw backend
// messages surface only on admin-facing calls; producer flows get a generic
// message for unexpected failures.
func lifecycleError(c *fiber.Ctx, err error, adminFacing bool) error {
	switch err {
	case ErrInvalidReason, ErrInvalidWeight, ErrNoRings, ErrProducerNotFound:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case ErrNotOwned, ErrOutsideCurrentMonth, ErrMissingProducerScope:
		return response.Forbidden(c, err.Error())
	case ErrRingNotFound, ErrRingNotAvailable, ErrAlreadyExited, ErrSameProducer:
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	}
	if adminFacing {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}

func gateError(c *fiber.Ctx, err error) error {
	switch err {
	case access.ErrNotAuthenticated:
		return response.Unauthorized(c, "Unauthorized")
	case access.ErrNoProfile, access.ErrProfileInactive, access.ErrNoProducerScope:
		return response.Forbidden(c, err.Error())
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
