package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string  `json:"name" validate:"required,min=2,max=10"`
	Email  string  `json:"email" validate:"required,email"`
	Qty    int     `json:"qty" validate:"required,gte=1"`
	Mode   string  `json:"mode" validate:"nullable,in=home,desk"`
	Amount float64 `json:"amount" validate:"nullable,gt=0"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(sample{Name: "Shirt", Email: "a@b.com", Qty: 2, Mode: "desk"})
	assert.False(t, HasErrors(errs))
}

func TestStructRequired(t *testing.T) {
	errs := Struct(sample{Email: "a@b.com", Qty: 1})
	assert.Contains(t, errs, "name")
}

func TestStructEmail(t *testing.T) {
	errs := Struct(sample{Name: "Shirt", Email: "not-an-email", Qty: 1})
	assert.Contains(t, errs, "email")
}

func TestStructGte(t *testing.T) {
	errs := Struct(sample{Name: "Shirt", Email: "a@b.com", Qty: 0})
	assert.Contains(t, errs, "qty")
}

func TestStructInList(t *testing.T) {
	errs := Struct(sample{Name: "Shirt", Email: "a@b.com", Qty: 1, Mode: "pigeon"})
	assert.Contains(t, errs, "mode")
}

func TestStructNullableSkipsEmpty(t *testing.T) {
	errs := Struct(sample{Name: "Shirt", Email: "a@b.com", Qty: 1})
	assert.NotContains(t, errs, "mode")
	assert.NotContains(t, errs, "amount")
}

func TestStructMaxLength(t *testing.T) {
	errs := Struct(sample{Name: "averyveryverylongname", Email: "a@b.com", Qty: 1})
	assert.Contains(t, errs, "name")
}

func TestSplitRulesKeepsInList(t *testing.T) {
	rules := splitRules("required,in=home,desk,max=10")
	assert.Equal(t, []string{"required", "in=home,desk", "max=10"}, rules)
}

func TestStructPointerInput(t *testing.T) {
	errs := Struct(&sample{Name: "Shirt", Email: "a@b.com", Qty: 1})
	assert.False(t, HasErrors(errs))
}
