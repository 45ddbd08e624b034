package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword form", "user=postgres dbname=truss", "user=postgres dbname=truss sslmode=require"},
		{"url form", "postgres://u:p@db/truss", "postgres://u:p@db/truss?sslmode=require"},
		{"url with params", "postgresql://db/truss?connect_timeout=5", "postgresql://db/truss?connect_timeout=5&sslmode=require"},
		{"explicit mode kept", "postgres://db/truss?sslmode=disable", "postgres://db/truss?sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithSSLMode(tt.in))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
