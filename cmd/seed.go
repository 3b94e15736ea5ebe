package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jaswdr/faker"
	"github.com/mitchellh/mapstructure"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/booking"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/config"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/validation"
)

var (
	seedFile string
	demoRows int
)

// seedContent is the layout of a seed file. Keys follow the API's json names.
type seedContent struct {
	Menu         []models.MenuItem      `json:"menu"`
	Timeline     []models.TimelineEvent `json:"timeline"`
	Team         []models.TeamMember    `json:"team"`
	Values       []models.Value         `json:"values"`
	Achievements []models.Achievement   `json:"achievements"`
}

func (c *seedContent) size() int {
	return len(c.Menu) + len(c.Timeline) + len(c.Team) + len(c.Values) + len(c.Achievements)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load menu and About content, optionally with demo bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedFile == "" && demoRows <= 0 {
			return fmt.Errorf("nothing to seed: pass --file and/or --demo")
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := config.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		stores := repository.NewMongoStores(config.OpenDatabase(client, cfg.MongoDatabase))

		if seedFile != "" {
			content, err := readSeedFile(seedFile)
			if err != nil {
				return err
			}
			bar := progressbar.Default(int64(content.size()), "content")
			if err := seedFromContent(ctx, stores, content, bar); err != nil {
				return err
			}
		}

		if demoRows > 0 {
			bar := progressbar.Default(int64(demoRows*2), "demo")
			if err := seedDemo(ctx, stores, log, demoRows, time.Now(), bar); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "yaml or json file with menu and About content")
	seedCmd.Flags().IntVar(&demoRows, "demo", 0, "number of fake reservations and contact messages to add")
	rootCmd.AddCommand(seedCmd)
}

func readSeedFile(path string) (*seedContent, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var content seedContent
	if err := v.Unmarshal(&content, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &content, nil
}

func seedFromContent(ctx context.Context, stores *repository.Stores, c *seedContent, bar *progressbar.ProgressBar) error {
	for i := range c.Menu {
		if c.Menu[i].Dietary == nil {
			c.Menu[i].Dietary = []string{}
		}
		if c.Menu[i].Allergens == nil {
			c.Menu[i].Allergens = []string{}
		}
	}

	if err := insertAll[models.MenuItem](ctx, stores.Menu, c.Menu, "menu", bar); err != nil {
		return err
	}
	if err := insertAll[models.TimelineEvent](ctx, stores.Timeline, c.Timeline, "timeline", bar); err != nil {
		return err
	}
	if err := insertAll[models.TeamMember](ctx, stores.Team, c.Team, "team", bar); err != nil {
		return err
	}
	if err := insertAll[models.Value](ctx, stores.Values, c.Values, "values", bar); err != nil {
		return err
	}
	return insertAll[models.Achievement](ctx, stores.Achievements, c.Achievements, "achievements", bar)
}

// insertAll validates every entry before writing any, so a bad file leaves
// the section untouched.
func insertAll[T any, P interface {
	*T
	repository.Document
}](ctx context.Context, store repository.Store[T], docs []T, section string, bar *progressbar.ProgressBar) error {
	for i := range docs {
		if err := validation.Struct(P(&docs[i])); err != nil {
			return fmt.Errorf("%s[%d]: %w", section, i, err)
		}
	}
	for i := range docs {
		if err := store.Insert(ctx, P(&docs[i])); err != nil {
			return fmt.Errorf("insert %s[%d]: %w", section, i, err)
		}
		_ = bar.Add(1)
	}
	return nil
}

var (
	demoTimes     = []string{"12:00", "12:30", "13:00", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30"}
	demoSeating   = []string{"indoor", "outdoor", "window", "private", "bar", "no-preference"}
	demoOccasions = []string{"", "Birthday", "Anniversary", "Business dinner", "Date night"}
	demoSubjects  = []string{"Private event enquiry", "Allergy question", "Feedback on my visit", "Catering", "Gift vouchers"}
)

func demoPhone(fake faker.Faker) string {
	return fmt.Sprintf("+1 555 %03d %04d", fake.IntBetween(100, 999), fake.IntBetween(0, 9999))
}

// seedDemo books n reservations over the coming month and files n contact
// messages, all with generated guests.
func seedDemo(ctx context.Context, stores *repository.Stores, log *logger.Logger, n int, now time.Time, bar *progressbar.ProgressBar) error {
	fake := faker.New()
	bookings := booking.NewService(stores.Reservations, log)

	for i := 0; i < n; i++ {
		person := fake.Person()
		day := fake.Time().TimeBetween(now.AddDate(0, 0, 1), now.AddDate(0, 1, 0))

		_, err := bookings.Book(ctx, models.Reservation{
			Date:              day.Format(validation.DateLayout),
			Time:              fake.RandomStringElement(demoTimes),
			Guests:            fake.IntBetween(1, 8),
			SeatingPreference: fake.RandomStringElement(demoSeating),
			Occasion:          fake.RandomStringElement(demoOccasions),
			Name:              person.Name(),
			Email:             fake.Internet().Email(),
			Phone:             demoPhone(fake),
		})
		if err != nil {
			return fmt.Errorf("demo reservation %d: %w", i, err)
		}
		_ = bar.Add(1)
	}

	for i := 0; i < n; i++ {
		msg := models.Contact{
			Name:    fake.Person().Name(),
			Email:   fake.Internet().Email(),
			Phone:   demoPhone(fake),
			Subject: fake.RandomStringElement(demoSubjects),
			Message: fake.Lorem().Sentence(12),
			Status:  models.ContactUnread,
		}
		if err := stores.Contacts.Insert(ctx, &msg); err != nil {
			return fmt.Errorf("demo contact %d: %w", i, err)
		}
		_ = bar.Add(1)
	}

	log.Action("seed_demo").Info("Demo data added", "reservations", n, "contacts", n)
	return nil
}
