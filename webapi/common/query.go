package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankcore/pkg/domain"
	"github.com/amirasaad/bankcore/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListQuery is the query string accepted by listing endpoints.
type ListQuery struct {
	Status string `query:"status" validate:"omitempty,max=32"`
	User   string `query:"user" validate:"omitempty,uuid"`
	Type   string `query:"type" validate:"omitempty,max=32"`
	From   string `query:"from"`
	To     string `query:"to"`
	Search string `query:"search" validate:"omitempty,max=128"`
	Page   int    `query:"page" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0"`
	Sort   string `query:"sort" validate:"omitempty,oneof=asc desc"`
}

// ParseListFilter reads a ListQuery from the request. The user filter is
// only honoured when allowUser is set, i.e. on admin listings.
func ParseListFilter(c *fiber.Ctx, allowUser bool) (dto.ListFilter, error) {
	var q ListQuery
	if err := c.QueryParser(&q); err != nil {
		return dto.ListFilter{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := Validate(q); err != nil {
		return dto.ListFilter{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	f := dto.ListFilter{
		Status: strings.TrimSpace(q.Status),
		Type:   strings.TrimSpace(q.Type),
		Search: strings.TrimSpace(q.Search),
		Page:   q.Page,
		Limit:  q.Limit,
		Sort:   dto.SortOrder(q.Sort),
	}
	if allowUser && q.User != "" {
		id, err := uuid.Parse(q.User)
		if err != nil {
			return dto.ListFilter{}, fmt.Errorf("user: %w", domain.ErrValidation)
		}
		f.UserID = &id
	}
	var err error
	if f.From, err = parseTime(q.From, false); err != nil {
		return dto.ListFilter{}, err
	}
	if f.To, err = parseTime(q.To, true); err != nil {
		return dto.ListFilter{}, err
	}
	return f, nil
}

// parseTime accepts RFC 3339 or a plain date. A plain upper bound covers the
// whole day.
func parseTime(v string, endOfDay bool) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", v, domain.ErrValidation)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// ParamUUID parses a path parameter as a UUID.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID: %w", name, domain.ErrValidation)
	}
	return id, nil
}
