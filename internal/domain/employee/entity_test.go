package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceMonthsFloorsPartialMonths(t *testing.T) {
	emp := Employee{HireDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same day", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 0},
		{"day before first anniversary of month", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), 0},
		{"exactly one month", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 1},
		{"just under six months", time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC), 5},
		{"exactly six months", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), 6},
		{"across year boundary", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), 14},
		{"before hire date", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emp.ServiceMonths(tt.now))
		})
	}
}
