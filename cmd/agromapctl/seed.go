package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	categoryRepo "agromap-backend/internal/domains/category/repository"
	templateModel "agromap-backend/internal/domains/template/model"
	templateRepo "agromap-backend/internal/domains/template/repository"
	userModel "agromap-backend/internal/domains/user/model"
	userRepo "agromap-backend/internal/domains/user/repository"
	userService "agromap-backend/internal/domains/user/service"
	"agromap-backend/internal/shared/authz"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	seedFile      string
	adminUsername string
	adminName     string
)

// seedCmd upserts the catalogue every deployment starts with
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert default categories and product templates",
	Long: `Upsert the default categories and product templates. Running it twice is harmless.

Examples:
  agromapctl seed
  agromapctl seed --file ./catalogue.yaml
  AGROMAP_ADMIN_PASSWORD=... agromapctl seed --admin admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Seed YAML file (defaults to the built-in catalogue)")
	seedCmd.Flags().StringVar(&adminUsername, "admin", "", "Also create or reset this ADMIN user (password from AGROMAP_ADMIN_PASSWORD)")
	seedCmd.Flags().StringVar(&adminName, "admin-name", "Administrador", "Display name of the seeded admin")
	rootCmd.AddCommand(seedCmd)
}

// ========================================
// SEED FILE
// ========================================

type Seed struct {
	Categories []SeedCategory `yaml:"categories"`
	Templates  []SeedTemplate `yaml:"templates"`
}

type SeedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SeedTemplate struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
}

// SeedAdmin is the optional operator account
type SeedAdmin struct {
	Username string
	Name     string
	Password string
}

// parseSeed decodes and checks a seed document.
// Every template must name a category declared in the same file.
func parseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	known := make(map[string]bool, len(s.Categories))
	for i, c := range s.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if known[name] {
			return nil, fmt.Errorf("category %q declared twice", name)
		}
		known[name] = true
	}

	for i, t := range s.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("template #%d has no name", i+1)
		}
		if !known[strings.TrimSpace(t.Category)] {
			return nil, fmt.Errorf("template %q references unknown category %q", t.Name, t.Category)
		}
	}

	return &s, nil
}

// ========================================
// APPLY
// ========================================

type categoryUpserter interface {
	UpsertByName(ctx context.Context, name string, description *string) (uuid.UUID, error)
}

type templateUpserter interface {
	Upsert(ctx context.Context, t *templateModel.Template) error
}

type userUpserter interface {
	UpsertByUsername(ctx context.Context, u *userModel.User) error
}

type seeder struct {
	categories categoryUpserter
	templates  templateUpserter
	users      userUpserter
	out        io.Writer
}

func (s *seeder) apply(ctx context.Context, seed *Seed, admin *SeedAdmin) error {
	// Step 1: categories
	ids := make(map[string]uuid.UUID, len(seed.Categories))
	for _, c := range seed.Categories {
		name := strings.TrimSpace(c.Name)
		id, err := s.categories.UpsertByName(ctx, name, optional(c.Description))
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		ids[name] = id
	}
	fmt.Fprintf(s.out, "categories: %d upserted\n", len(seed.Categories))

	// Step 2: templates
	for _, t := range seed.Templates {
		tpl := &templateModel.Template{
			Name:        strings.TrimSpace(t.Name),
			Description: optional(t.Description),
			Image:       optional(t.Image),
			CategoryID:  ids[strings.TrimSpace(t.Category)],
		}
		if err := s.templates.Upsert(ctx, tpl); err != nil {
			return fmt.Errorf("seed template %q: %w", tpl.Name, err)
		}
	}
	fmt.Fprintf(s.out, "templates: %d upserted\n", len(seed.Templates))

	// Step 3: admin account
	if admin == nil {
		return nil
	}
	if len(admin.Password) < userModel.MinPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", userModel.MinPasswordLength)
	}

	hash, err := userService.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	u := &userModel.User{
		Name:         admin.Name,
		Username:     strings.ToLower(strings.TrimSpace(admin.Username)),
		PasswordHash: hash,
		Role:         authz.RoleAdmin,
	}
	if err := s.users.UpsertByUsername(ctx, u); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "admin: %s ready\n", u.Username)
	return nil
}

func runSeed(cmd *cobra.Command) error {
	data := defaultSeed
	if seedFile != "" {
		b, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	seed, err := parseSeed(data)
	if err != nil {
		return err
	}

	var admin *SeedAdmin
	if adminUsername != "" {
		admin = &SeedAdmin{
			Username: adminUsername,
			Name:     adminName,
			Password: os.Getenv("AGROMAP_ADMIN_PASSWORD"),
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	s := &seeder{
		categories: categoryRepo.NewPostgresRepository(db.Pool),
		templates:  templateRepo.NewPostgresRepository(db.Pool),
		users:      userRepo.NewPostgresRepository(db.Pool),
		out:        cmd.OutOrStdout(),
	}
	if err := s.apply(ctx, seed, admin); err != nil {
		return err
	}

	log.Debug().Int("categories", len(seed.Categories)).Int("templates", len(seed.Templates)).Msg("seed complete")
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
