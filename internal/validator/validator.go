// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// indianMobileRegex matches 10-digit Indian mobile numbers starting with 6-9.
var indianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("indian_mobile", validateIndianMobile)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("gold_carat", validateGoldCarat)
		_ = v.RegisterValidation("goal_icon", validateGoalIcon)
		_ = v.RegisterValidation("goal_transaction_type", validateGoalTransactionType)
		_ = v.RegisterValidation("bill_status", validateBillStatus)
		_ = v.RegisterValidation("participant_status", validateParticipantStatus)
	}
}

func validateIndianMobile(fl validator.FieldLevel) bool {
	return indianMobileRegex.MatchString(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "gold", "silver":
		return true
	}
	return false
}

func validateGoldCarat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "22K", "24K":
		return true
	}
	return false
}

func validateGoalIcon(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bike", "car", "home", "plane", "education", "wedding":
		return true
	}
	return false
}

func validateGoalTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "deposit", "withdraw", "payment":
		return true
	}
	return false
}

func validateBillStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "completed", "cancelled":
		return true
	}
	return false
}

func validateParticipantStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "paid":
		return true
	}
	return false
}
