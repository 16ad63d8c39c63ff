package validation

import (
	"testing"

	"rhea-commerce/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() model.AddressRequest {
	return model.AddressRequest{
		Title:      "Ev",
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		Phone:      "05321234567",
		Address:    "Çamlık Mahallesi, Kahve Sokak No:3 D:5",
		City:       "İstanbul",
		District:   "Kadıköy",
		PostalCode: "34710",
	}
}

func TestStruct_ValidAddress(t *testing.T) {
	assert.NoError(t, Struct(validAddress()))
}

func TestStruct_PhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"05321234567", true},
		{"+905321234567", true},
		{"5321234567", true},
		{"02121234567", false}, // landline prefix
		{"532123", false},
		{"abc", false},
	}

	for _, tt := range tests {
		addr := validAddress()
		addr.Phone = tt.phone
		err := Struct(addr)
		if tt.valid {
			assert.NoError(t, err, "phone %q", tt.phone)
		} else {
			assert.Error(t, err, "phone %q", tt.phone)
		}
	}
}

func TestStruct_ReportsFirstFailingField(t *testing.T) {
	addr := validAddress()
	addr.FirstName = "A"
	addr.PostalCode = "123"

	err := Struct(addr)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "FirstName", fieldErr.Field)
}

func TestStruct_PostalCodeLength(t *testing.T) {
	addr := validAddress()
	addr.PostalCode = "3471"
	assert.Error(t, Struct(addr))

	addr.PostalCode = "34710a"
	assert.Error(t, Struct(addr))
}

func TestStruct_ShortAddressRejected(t *testing.T) {
	addr := validAddress()
	addr.Address = "kısa"
	assert.Error(t, Struct(addr))
}
