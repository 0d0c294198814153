package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Sort directions.
const (
	SortASC  = "ASC"
	SortDESC = "DESC"
)

// DateFilter constrains expires_at. Set fields are ANDed; Between is
// inclusive on both ends.
type DateFilter struct {
	Equals      *time.Time
	LessThan    *time.Time
	GreaterThan *time.Time
	Between     *[2]time.Time
}

// IsZero reports whether no constraint is set.
func (f DateFilter) IsZero() bool {
	return f.Equals == nil && f.LessThan == nil && f.GreaterThan == nil && f.Between == nil
}

func (f DateFilter) Validate() error {
	if f.Between != nil && f.Between[1].Before(f.Between[0]) {
		return errors.New("between: end must not be before start")
	}
	return nil
}

// TokenFilter narrows a token listing. Nil fields do not filter.
type TokenFilter struct {
	CustomerID *string
	ShopID     *int64
	ExpiresAt  *DateFilter
}

func (f TokenFilter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.CustomerID, validation.NilOrNotEmpty),
		validation.Field(&f.ShopID, validation.Min(1)),
		validation.Field(&f.ExpiresAt),
	)
}

// Pagination bounds a listing. Limit nil means unbounded.
type Pagination struct {
	Offset int64
	Limit  *int64
}

func (p Pagination) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Offset, validation.Min(0)),
		validation.Field(&p.Limit, validation.Min(0)),
	)
}

// Sorting orders a token listing by expires_at.
type Sorting struct {
	ExpiresAt string
}

// DefaultSorting is ascending by expiry.
func DefaultSorting() Sorting {
	return Sorting{ExpiresAt: SortASC}
}

func (s Sorting) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ExpiresAt, validation.Required, validation.In(SortASC, SortDESC)),
	)
}

// Descending reports whether results are ordered newest expiry first.
func (s Sorting) Descending() bool {
	return s.ExpiresAt == SortDESC
}
