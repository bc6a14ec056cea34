package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mubashirbm/laibix-admin/internal/models"
)

// productInput is the coerced form. Fields are declared in rule priority
// order; the validator reports violations in declaration order.
type productInput struct {
	Title       string           `name:"title" validate:"required,max=200"`
	Price       *decimal.Decimal `name:"price" validate:"required,positive,max_scale,max_integer_digits"`
	SKU         string           `name:"sku" validate:"required,max=100"`
	Stock       *int             `name:"stock" validate:"required,gte=0"`
	Description string           `name:"description" validate:"omitempty,max=2000"`
	Tags        string           `name:"tags" validate:"omitempty,max=500"`
}

// Limits of the price column, decimal(10,2).
const (
	priceScale         = 2
	priceIntegerDigits = 8
)

// maxPrice is the first value the price column cannot hold.
var maxPrice = decimal.New(1, priceIntegerDigits)

var ruleMessages = map[string]string{
	"title":       "Title is required and must be at most 200 characters",
	"price":       "Price must be a positive number",
	"sku":         "SKU is required and must be at most 100 characters",
	"stock":       "Stock must be a whole number and cannot be negative",
	"description": "Description must be at most 2000 characters",
	"tags":        "Tags must be at most 500 characters",
}

// ruleOverrides refine ruleMessages for specific field/rule pairs.
var ruleOverrides = map[string]string{
	"price.max_scale":          "Price can have at most 2 decimal places",
	"price.max_integer_digits": "Price must be less than 100000000",
}

// Validator turns raw product forms into submissions.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("name")
	})
	// Decimals are validated through their exact string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterValidation("positive", decimalRule(func(d decimal.Decimal) bool {
		return d.IsPositive()
	}))
	v.RegisterValidation("max_scale", decimalRule(func(d decimal.Decimal) bool {
		return d.Equal(d.Round(priceScale))
	}))
	v.RegisterValidation("max_integer_digits", decimalRule(func(d decimal.Decimal) bool {
		return d.Abs().LessThan(maxPrice)
	}))
	return &Validator{validate: v}
}

// Validate checks form and returns the submission, or the first violated
// rule as a *ValidationError. Rules are checked in the order title, price,
// sku, stock, description, tags.
func (v *Validator) Validate(form models.ProductForm) (*models.Submission, error) {
	input := productInput{
		Title:       strings.TrimSpace(form.Title),
		Price:       parsePrice(form.Price),
		SKU:         strings.TrimSpace(form.SKU),
		Stock:       parseStock(form.Stock),
		Description: strings.TrimSpace(form.Description),
		Tags:        form.Tags,
	}

	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return nil, fmt.Errorf("validating product: %w", err)
		}
		first := fieldErrs[0]
		return nil, &ValidationError{
			Field:   first.Field(),
			Rule:    first.Tag(),
			Message: ruleMessage(first.Field(), first.Tag()),
		}
	}

	return &models.Submission{
		Title:       input.Title,
		Description: input.Description,
		Price:       *input.Price,
		SKU:         input.SKU,
		Stock:       *input.Stock,
		Tags:        ParseTags(form.Tags),
		IsFeatured:  form.IsFeatured,
	}, nil
}

func ruleMessage(field, rule string) string {
	if msg, ok := ruleOverrides[field+"."+rule]; ok {
		return msg
	}
	return ruleMessages[field]
}

// decimalRule adapts a check on a decimal to a validator.Func. The field
// arrives as the decimal's string form.
func decimalRule(check func(d decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && check(d)
	}
}

// ParseTags splits a comma separated list, trimming entries and dropping
// empty ones. Order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parsePrice returns nil for anything that is not a finite decimal number.
func parsePrice(raw string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &d
}

// parseStock returns nil for anything that is not a base-10 integer.
func parseStock(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}
