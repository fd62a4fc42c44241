package form_test

import (
	"testing"

	"github.com/UnknownOlympus/ecoleta/internal/form"
	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	states = []models.State{
		{ID: 33, Name: "Rio de Janeiro", Initials: "RJ"},
		{ID: 35, Name: "São Paulo", Initials: "SP"},
	}
	spCities = []models.City{
		{ID: 3509502, Name: "Campinas"},
		{ID: 3550308, Name: "São Paulo"},
	}
)

func TestSetField(t *testing.T) {
	var draft form.Draft

	require.NoError(t, draft.SetField(form.FieldName, "  Recicla Já "))
	require.NoError(t, draft.SetField(form.FieldEmail, "contato@recicla.test"))
	require.NoError(t, draft.SetField(form.FieldWhatsapp, "<b>11999990000</b>"))

	err := draft.SetField("phone", "123")
	require.ErrorIs(t, err, form.ErrUnknownField)

	sub := draft.Submission()
	assert.Equal(t, models.Contact{
		Name:     "Recicla Já",
		Email:    "contato@recicla.test",
		Whatsapp: "11999990000",
	}, sub.Contact)
}

func TestSetField_StripsMarkup(t *testing.T) {
	var draft form.Draft

	require.NoError(t, draft.SetField(form.FieldName, `Ponto <script>alert(1)</script>Verde`))

	assert.NotContains(t, draft.Submission().Name, "<script>")
	assert.Contains(t, draft.Submission().Name, "Ponto")

	t.Run("entity encoded markup", func(t *testing.T) {
		var encoded form.Draft

		require.NoError(t, encoded.SetField(form.FieldName, "Ponto &lt;script&gt;alert(1)&lt;/script&gt; Verde"))

		name := encoded.Submission().Name
		assert.NotContains(t, name, "<script>")
		assert.NotContains(t, name, "&lt;")
		assert.Contains(t, name, "Ponto")
		assert.Contains(t, name, "Verde")
	})

	t.Run("double encoded markup", func(t *testing.T) {
		var encoded form.Draft

		require.NoError(t, encoded.SetField(form.FieldName, "Ponto &amp;lt;b&amp;gt;Verde&amp;lt;/b&amp;gt;"))

		assert.NotContains(t, encoded.Submission().Name, "<b>")
	})

	t.Run("ampersand and apostrophe kept as typed", func(t *testing.T) {
		var plain form.Draft

		require.NoError(t, plain.SetField(form.FieldName, "Reciclagem D'Ávila & Filhos"))

		assert.Equal(t, "Reciclagem D'Ávila & Filhos", plain.Submission().Name)
	})
}

func TestSelectStateAndCity(t *testing.T) {
	t.Run("select state then city", func(t *testing.T) {
		var draft form.Draft

		require.NoError(t, draft.SelectState(states, 35))
		require.NoError(t, draft.SelectCity(spCities, 3509502))

		sub := draft.Submission()
		assert.Equal(t, "SP", sub.UF)
		assert.Equal(t, "Campinas", sub.City)
		assert.Equal(t, 35, draft.StateID())
		assert.Equal(t, 3509502, draft.CityID())
	})

	t.Run("changing state clears city", func(t *testing.T) {
		var draft form.Draft
		require.NoError(t, draft.SelectState(states, 35))
		require.NoError(t, draft.SelectCity(spCities, 3550308))

		require.NoError(t, draft.SelectState(states, 33))

		sub := draft.Submission()
		assert.Equal(t, "RJ", sub.UF)
		assert.Empty(t, sub.City)
		assert.Zero(t, draft.CityID())
	})

	t.Run("reselecting same state keeps city", func(t *testing.T) {
		var draft form.Draft
		require.NoError(t, draft.SelectState(states, 35))
		require.NoError(t, draft.SelectCity(spCities, 3550308))

		require.NoError(t, draft.SelectState(states, 35))

		assert.Equal(t, "São Paulo", draft.Submission().City)
	})

	t.Run("unknown ids", func(t *testing.T) {
		var draft form.Draft

		require.ErrorIs(t, draft.SelectState(states, 99), form.ErrUnknownState)
		require.ErrorIs(t, draft.SelectCity(spCities, 1), form.ErrUnknownCity)
		assert.Zero(t, draft.StateID())
	})

	t.Run("zero clears", func(t *testing.T) {
		var draft form.Draft
		require.NoError(t, draft.SelectState(states, 35))
		require.NoError(t, draft.SelectCity(spCities, 3509502))

		require.NoError(t, draft.SelectCity(nil, 0))
		assert.Empty(t, draft.Submission().City)

		require.NoError(t, draft.SelectState(nil, 0))
		assert.Empty(t, draft.Submission().UF)
	})
}

func TestToggleItem(t *testing.T) {
	var draft form.Draft

	draft.ToggleItem(3)
	draft.ToggleItem(1)
	draft.ToggleItem(5)
	assert.Equal(t, []int{3, 1, 5}, draft.Submission().Items)
	assert.True(t, draft.Selected(1))

	draft.ToggleItem(1)
	assert.Equal(t, []int{3, 5}, draft.Submission().Items)
	assert.False(t, draft.Selected(1))

	draft.ToggleItem(1)
	assert.Equal(t, []int{3, 5, 1}, draft.Submission().Items)
}

func TestSubmission(t *testing.T) {
	var draft form.Draft
	image := &models.Image{Filename: "ponto.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

	draft.SetPosition(models.Coordinates{Latitude: -22.9056, Longitude: -47.0608})
	draft.SetImage(image)
	draft.ToggleItem(2)

	sub := draft.Submission()
	assert.Equal(t, models.Coordinates{Latitude: -22.9056, Longitude: -47.0608}, sub.Position)
	assert.Same(t, image, sub.Image)

	sub.Items[0] = 99
	assert.Equal(t, []int{2}, draft.Submission().Items, "submission must not alias draft state")
}

func TestSetField_KeepsPunctuation(t *testing.T) {
	var draft form.Draft

	require.NoError(t, draft.SetField(form.FieldName, "Coleta D'Ávila & Filhos"))

	assert.Equal(t, "Coleta D'Ávila & Filhos", draft.Submission().Name)
}
