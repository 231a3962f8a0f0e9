package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rastreo-envios/internal/application/dto"
)

func validCreateRequest() dto.CreatePackageRequest {
	return dto.CreatePackageRequest{
		Recipient: dto.PartyRequest{FullName: "Luis Pérez", Address: "Carrera 7 # 71-21, Bogotá"},
		Sender:    dto.PartyRequest{FullName: "Ana Gómez", Address: "Calle 10 # 43A-30, Medellín"},
		Details: dto.DetailsRequest{
			Description: "Books for Alice",
			Weight:      2.5,
			Dimensions:  dto.DimensionsRequest{Length: 30, Width: 20, Height: 10},
			Value:       150000,
		},
	}
}

func TestValidate_PayloadValido(t *testing.T) {
	assert.NoError(t, dto.Validate(validCreateRequest()))
}

func TestValidate_MensajesConcatenadosEnOrdenDeDeclaracion(t *testing.T) {
	req := validCreateRequest()
	req.Sender.FullName = ""
	req.Details.Weight = 0

	err := dto.Validate(req)
	require.Error(t, err)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Full name is required, Weight must be a positive number", verr.Message)
}

func TestValidate_EmailInvalido(t *testing.T) {
	req := validCreateRequest()
	req.Recipient.Email = "no-es-un-email"

	err := dto.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())
}

func TestValidate_EstadoDesconocido(t *testing.T) {
	req := validCreateRequest()
	req.Status = "perdido"

	err := dto.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Invalid status", err.Error())
}

func TestValidate_DimensionesNoPositivas(t *testing.T) {
	req := validCreateRequest()
	req.Details.Dimensions.Height = -1

	err := dto.Validate(req)
	require.Error(t, err)
	assert.Equal(t, "Height must be a positive number", err.Error())
}

func TestValidate_PatchVacioEsValido(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.UpdatePackageRequest{}))
}

func TestValidate_PatchConCamposInvalidos(t *testing.T) {
	empty := ""
	weight := -3.0
	err := dto.Validate(dto.UpdatePackageRequest{
		Recipient: &dto.PartyPatch{FullName: &empty},
		Details:   &dto.DetailsPatch{Weight: &weight},
	})
	require.Error(t, err)
	assert.Equal(t, "Full name is required, Weight must be a positive number", err.Error())
}

func TestValidate_SignupCamposRequeridos(t *testing.T) {
	err := dto.Validate(dto.SignupRequest{
		Email:       "ana@example.com",
		Password:    "s3cret0!",
		Name:        "Ana Gómez",
		AccountType: "empresa",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid account type", err.Error())
}
