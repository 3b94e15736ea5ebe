package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

const seedYAML = `
menu:
  - name: Margherita
    description: Tomato, mozzarella, basil
    price: 14
    category: mains
    dietary: [Vegetarian]
    featured: true
  - name: Tiramisu
    price: 8.5
    category: desserts
timeline:
  - year: "2012"
    title: Opened our doors
    order: 1
values:
  - title: Fresh produce
    icon: leaf
    order: 1
achievements:
  - title: Best trattoria
    icon: trophy
    year: "2020"
`

func quietBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1, progressbar.OptionSetWriter(io.Discard))
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadSeedFile(t *testing.T) {
	content, err := readSeedFile(writeSeed(t, seedYAML))
	require.NoError(t, err)

	require.Len(t, content.Menu, 2)
	assert.Equal(t, "Margherita", content.Menu[0].Name)
	assert.Equal(t, 14.0, content.Menu[0].Price)
	assert.Equal(t, []string{"Vegetarian"}, content.Menu[0].Dietary)
	assert.True(t, content.Menu[0].Featured)
	assert.Equal(t, 8.5, content.Menu[1].Price)
	assert.Equal(t, models.IconLeaf, content.Values[0].Icon)
	assert.Equal(t, 5, content.size())
}

func TestSeedFromContent(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	content, err := readSeedFile(writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.NoError(t, seedFromContent(ctx, stores, content, quietBar()))

	menu, err := stores.Menu.List(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, menu, 2)
	for _, item := range menu {
		assert.NotEmpty(t, item.Item_id)
		assert.NotNil(t, item.Allergens)
	}

	count, err := stores.Achievements.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSeedRejectsInvalidSection(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	content := &seedContent{Values: []models.Value{
		{Title: "Warmth", Icon: models.IconHeart},
		{Title: "Mystery", Icon: "rocket"},
	}}
	err := seedFromContent(ctx, stores, content, quietBar())
	require.Error(t, err)

	fe, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "icon")

	count, err := stores.Values.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	require.NoError(t, seedDemo(ctx, stores, logger.Nop(), 5, time.Now(), quietBar()))

	reservations, err := stores.Reservations.List(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, reservations, 5)
	for _, r := range reservations {
		assert.Equal(t, models.ReservationPending, r.Status)
		assert.NotEmpty(t, r.Email)
	}

	count, err := stores.Contacts.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}
