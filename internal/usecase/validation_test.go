package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/credit-checkout/internal/domain/errors"
	"github.com/polkiloo/credit-checkout/internal/domain/model"
)

func TestNormalizeCNPJ(t *testing.T) {
	cases := map[string]string{
		"11.444.777/0001-61":  "11444777000161",
		"31 605 828/0001-05":  "31605828000105",
		"31_605.828\\0001–05": "31605828000105",
		"\t11444777000161\n":  "11444777000161",
		"cnpj":                "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeCNPJ(in), "input %q", in)
	}
}

func TestValidateCNPJ(t *testing.T) {
	valid := []string{
		"11222333000181",
		"31605828000105",
		NormalizeCNPJ("11.444.777/0001-61"),
		NormalizeCNPJ("31_605.828\\0001-05"),
	}
	for _, cnpj := range valid {
		require.True(t, ValidateCNPJ(cnpj), "cnpj %s", cnpj)
	}

	invalid := []string{"", "123456", "abcdefghijklmn", "11222333000182", "00000000000000", "112223330001811", "11.444.777/0001-61"}
	for _, cnpj := range invalid {
		require.False(t, ValidateCNPJ(cnpj), "cnpj %s", cnpj)
	}
}

func TestValidateCart(t *testing.T) {
	require.NoError(t, ValidateCart([]model.CartLine{{SKU: "oweuriek", Quantity: 1}}))

	invalid := [][]model.CartLine{
		nil,
		{{SKU: " ", Quantity: 1}},
		{{SKU: "oweuriek", Quantity: 0}},
		{{SKU: "oweuriek", Quantity: 1}, {SKU: "eepheeje", Quantity: -2}},
	}
	for _, cart := range invalid {
		require.ErrorIs(t, ValidateCart(cart), domainErrors.ErrInvalidCart, "cart %+v", cart)
	}
}

func TestValidateContact(t *testing.T) {
	full := model.Contact{FirstName: "Ana", LastName: "Silva", Phone: "1", Email: "a@b.c"}
	require.NoError(t, validateContact(full))

	missing := full
	missing.Phone = ""
	var mf *domainErrors.MissingFieldError
	require.ErrorAs(t, validateContact(missing), &mf)
	require.Equal(t, "phone", mf.Field)
}
