package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/acourt/roster/internal/config"
	"github.com/acourt/roster/internal/org"
	"github.com/acourt/roster/internal/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo company with users, a team, a project and an announcement",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

const demoCompanyID = "demo-acme"

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	stores := postgres.Stores(pool)
	identity := org.NewIdentity(stores.Users, verifier)
	links := org.NewLinks(stores.Users, stores.Companies, stores.Teams)
	users := org.NewUserService(stores, identity, links, verifier)
	teams := org.NewTeamService(stores, links)
	projects := org.NewProjectService(stores)
	announcements := org.NewAnnouncementService(stores, identity, links)

	// Check if seed has already run.
	existing, err := stores.Companies.FindByID(ctx, demoCompanyID)
	if err != nil {
		return fmt.Errorf("checking existing company: %w", err)
	}
	if existing != nil {
		slog.Info("demo data already exists, skipping seed")
		return nil
	}

	company := &org.Company{
		ID:        demoCompanyID,
		Name:      "Acme Corporation",
		CreatedAt: time.Now().UTC(),
	}
	if err := stores.Companies.Save(ctx, company); err != nil {
		return fmt.Errorf("creating demo company: %w", err)
	}
	slog.Info("created company", "name", company.Name, "id", company.ID)

	admin, err := users.Add(ctx, demoCompanyID, org.AddUserInput{
		Profile: &org.ProfileInput{
			FirstName: strptr("Ada"),
			LastName:  strptr("Lovelace"),
			Email:     strptr("ada@acme.test"),
		},
		Credentials: &org.CredentialsInput{Username: "ada", Password: "analytical"},
		Admin:       true,
	})
	if err != nil {
		return fmt.Errorf("creating demo admin: %w", err)
	}

	// A login flips the admin from PENDING to JOINED, which the
	// administrative operations below require.
	adminCreds := &org.CredentialsInput{Username: "ada", Password: "analytical"}
	if _, err := users.Login(ctx, adminCreds); err != nil {
		return fmt.Errorf("activating demo admin: %w", err)
	}

	memberInputs := []struct {
		first, last, username, password string
	}{
		{"Grace", "Hopper", "grace", "cobol"},
		{"Alan", "Turing", "alan", "enigma"},
	}
	memberIDs := make([]string, 0, len(memberInputs))
	for _, m := range memberInputs {
		u, err := users.Add(ctx, demoCompanyID, org.AddUserInput{
			Profile: &org.ProfileInput{
				FirstName: strptr(m.first),
				LastName:  strptr(m.last),
				Email:     strptr(m.username + "@acme.test"),
			},
			Credentials: &org.CredentialsInput{Username: m.username, Password: m.password},
		})
		if err != nil {
			return fmt.Errorf("creating demo user %q: %w", m.username, err)
		}
		slog.Info("created user", "username", m.username, "id", u.ID)
		memberIDs = append(memberIDs, u.ID)
	}

	teamMembers := append([]string{admin.ID}, memberIDs...)
	team, err := teams.Create(ctx, demoCompanyID, org.TeamInput{
		Name:        strptr("Platform"),
		Description: strptr("Core platform engineering"),
		TeammateIDs: &teamMembers,
	})
	if err != nil {
		return fmt.Errorf("creating demo team: %w", err)
	}
	slog.Info("created team", "name", team.Name, "id", team.ID)

	project, err := projects.Create(ctx, org.ProjectInput{
		Name:        strptr("Onboarding Portal"),
		Description: strptr("Self-service onboarding for new employees"),
		Active:      boolptr(true),
		TeamID:      strptr(team.ID),
	})
	if err != nil {
		return fmt.Errorf("creating demo project: %w", err)
	}
	slog.Info("created project", "name", project.Name, "id", project.ID)

	ann, err := announcements.Create(ctx, demoCompanyID, org.AnnouncementInput{
		Title:       strptr("Welcome aboard"),
		Message:     strptr("The demo environment is ready. Log in and explore."),
		Credentials: adminCreds,
	})
	if err != nil {
		return fmt.Errorf("creating demo announcement: %w", err)
	}
	slog.Info("created announcement", "title", ann.Title, "id", ann.ID)

	fmt.Printf("\n=== Demo Data Seeded ===\n")
	fmt.Printf("Company:  %s (%s)\n", company.Name, company.ID)
	fmt.Printf("Admin:    ada / analytical\n")
	fmt.Printf("Members:  grace / cobol, alan / enigma\n")
	fmt.Printf("\nTry it:\n")
	fmt.Printf("  curl -X POST http://localhost:8080/users/login -d '{\"username\":\"ada\",\"password\":\"analytical\"}'\n")
	fmt.Printf("  curl http://localhost:8080/company/%s/users\n", company.ID)

	return nil
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
