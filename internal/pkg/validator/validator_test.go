package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusRequest struct {
	ID     int64  `json:"id" validate:"required,gt=0"`
	Status string `json:"status" validate:"required,oneof=new contacted converted closed"`
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	errs := Validate(statusRequest{Status: "spam"})
	assert.Equal(t, "required", errs["id"])
	assert.Equal(t, "oneof=new contacted converted closed", errs["status"])
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(statusRequest{ID: 3, Status: "contacted"}))
}
