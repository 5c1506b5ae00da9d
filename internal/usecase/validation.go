package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

const cnpjLength = 14

// NormalizeCNPJ drops every non-digit character.
func NormalizeCNPJ(cnpj string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, cnpj)
}

// ValidateCNPJ checks a 14 digit CNPJ using its two mod-11 check digits.
func ValidateCNPJ(cnpj string) bool {
	if len(cnpj) != cnpjLength {
		return false
	}

	digits := make([]int, cnpjLength)
	same := true
	for i := 0; i < cnpjLength; i++ {
		c := cnpj[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
		if digits[i] != digits[0] {
			same = false
		}
	}
	if same {
		return false
	}

	return digits[12] == cnpjCheckDigit(digits[:12]) && digits[13] == cnpjCheckDigit(digits[:13])
}

// cnpjCheckDigit computes the next check digit with weights cycling 2..9 from the right.
func cnpjCheckDigit(digits []int) int {
	sum, weight := 0, 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += digits[i] * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

// ValidateCart rejects empty carts, blank skus and non-positive quantities.
func ValidateCart(cart []model.CartLine) error {
	if len(cart) == 0 {
		return fmt.Errorf("%w: cart is empty", domainErrors.ErrInvalidCart)
	}
	for i, line := range cart {
		if strings.TrimSpace(line.SKU) == "" {
			return fmt.Errorf("%w: line %d has no sku", domainErrors.ErrInvalidCart, i)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: line %d has quantity %d", domainErrors.ErrInvalidCart, i, line.Quantity)
		}
	}
	return nil
}

func validateContact(c model.Contact) error {
	fields := []struct {
		name  string
		value string
	}{
		{"email", c.Email},
		{"phone", c.Phone},
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &domainErrors.MissingFieldError{Field: f.name}
		}
	}
	return nil
}
