package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devconnect-io/devconnect/pkg/client"
)

// session bundles the SDK pieces one command invocation needs. The
// token survives between invocations in a file under the home dir.
type session struct {
	dispatcher *client.Dispatcher
	store      *client.Store
	alerts     *client.AlertQueue
	api        *client.Client
}

func newSession() *session {
	api := client.NewClient(apiURL)
	if token := loadToken(); token != "" {
		api.SetToken(token)
	}

	store := client.NewStore()
	alerts := client.NewAlertQueue()
	return &session{
		dispatcher: client.NewDispatcher(api, store, alerts),
		store:      store,
		alerts:     alerts,
		api:        api,
	}
}

func tokenFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devconnect-token"
	}
	return filepath.Join(home, ".devconnect", "token")
}

func loadToken() string {
	data, err := os.ReadFile(tokenFilePath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path := tokenFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func clearToken() {
	os.Remove(tokenFilePath())
}

// --- auth ---

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		s := newSession()
		err := s.dispatcher.Register(cmd.Context(), client.RegisterInput{
			Name: name, Email: email, Password: password,
		})
		printAlerts(s.alerts)
		if err != nil {
			return err
		}

		if err := saveToken(s.api.Token()); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}
		printSuccess("Registered and logged in as %s", name)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		s := newSession()
		err := s.dispatcher.Login(cmd.Context(), email, password)
		printAlerts(s.alerts)
		if err != nil {
			return err
		}

		if err := saveToken(s.api.Token()); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		state := s.store.State()
		if state.Auth.User != nil {
			printSuccess("Logged in as %s", state.Auth.User.Name)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		s.dispatcher.Logout()
		clearToken()
		printSuccess("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.dispatcher.LoadUser(cmd.Context()); err != nil {
			return err
		}

		state := s.store.State()
		if state.Auth.User == nil {
			return fmt.Errorf("not logged in")
		}
		return printJSON(state.Auth.User)
	},
}

func init() {
	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password (min 6 characters)")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit developer profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your own profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.GetCurrentProfile(cmd.Context())
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profile)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles in the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.GetAllProfiles(cmd.Context())
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profiles)
	},
}

var profileGetCmd = &cobra.Command{
	Use:   "get <user_id>",
	Short: "Show a public profile by its owner's id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.GetProfileByUserID(cmd.Context(), args[0])
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profile)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := client.ProfileForm{}
		form.Status, _ = cmd.Flags().GetString("status")
		form.Skills, _ = cmd.Flags().GetString("skills")
		form.Company, _ = cmd.Flags().GetString("company")
		form.Website, _ = cmd.Flags().GetString("website")
		form.Location, _ = cmd.Flags().GetString("location")
		form.Bio, _ = cmd.Flags().GetString("bio")
		form.GithubUsername, _ = cmd.Flags().GetString("github")
		form.Youtube, _ = cmd.Flags().GetString("youtube")
		form.Twitter, _ = cmd.Flags().GetString("twitter")
		form.Facebook, _ = cmd.Flags().GetString("facebook")
		form.Linkedin, _ = cmd.Flags().GetString("linkedin")
		form.Instagram, _ = cmd.Flags().GetString("instagram")

		s := newSession()
		err := s.dispatcher.CreateOrUpdateProfile(cmd.Context(), form, hasProfile(cmd.Context()))
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profile)
	},
}

// hasProfile probes quietly whether a profile already exists, so set
// reports "Created" the first time and "Updated" afterwards.
func hasProfile(ctx context.Context) bool {
	probe := newSession()
	return probe.dispatcher.GetCurrentProfile(ctx) == nil
}

func init() {
	profileSetCmd.Flags().String("status", "", "professional status (required by the API)")
	profileSetCmd.Flags().String("skills", "", "comma-separated skills (required by the API)")
	profileSetCmd.Flags().String("company", "", "company")
	profileSetCmd.Flags().String("website", "", "website URL")
	profileSetCmd.Flags().String("location", "", "location")
	profileSetCmd.Flags().String("bio", "", "short bio")
	profileSetCmd.Flags().String("github", "", "github username")
	profileSetCmd.Flags().String("youtube", "", "youtube URL")
	profileSetCmd.Flags().String("twitter", "", "twitter URL")
	profileSetCmd.Flags().String("facebook", "", "facebook URL")
	profileSetCmd.Flags().String("linkedin", "", "linkedin URL")
	profileSetCmd.Flags().String("instagram", "", "instagram URL")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileSetCmd)
}

// --- experience ---

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Manage work experience entries",
}

var experienceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a work experience entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := client.ExperienceForm{}
		form.Title, _ = cmd.Flags().GetString("title")
		form.Company, _ = cmd.Flags().GetString("company")
		form.Location, _ = cmd.Flags().GetString("location")
		form.From, _ = cmd.Flags().GetString("from")
		form.To, _ = cmd.Flags().GetString("to")
		form.Current, _ = cmd.Flags().GetBool("current")
		form.Description, _ = cmd.Flags().GetString("description")

		s := newSession()
		err := s.dispatcher.AddExperience(cmd.Context(), form)
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profile.Experience)
	},
}

var experienceRmCmd = &cobra.Command{
	Use:   "rm <entry_id>",
	Short: "Remove a work experience entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.DeleteExperience(cmd.Context(), args[0])
		printAlerts(s.alerts)
		return err
	},
}

func init() {
	experienceAddCmd.Flags().String("title", "", "job title")
	experienceAddCmd.Flags().String("company", "", "company name")
	experienceAddCmd.Flags().String("location", "", "location")
	experienceAddCmd.Flags().String("from", "", "start date, e.g. 2020-01-01")
	experienceAddCmd.Flags().String("to", "", "end date")
	experienceAddCmd.Flags().Bool("current", false, "current position")
	experienceAddCmd.Flags().String("description", "", "description")

	experienceCmd.AddCommand(experienceAddCmd)
	experienceCmd.AddCommand(experienceRmCmd)
}

// --- education ---

var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Manage education entries",
}

var educationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an education entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := client.EducationForm{}
		form.School, _ = cmd.Flags().GetString("school")
		form.Degree, _ = cmd.Flags().GetString("degree")
		form.FieldOfStudy, _ = cmd.Flags().GetString("field")
		form.From, _ = cmd.Flags().GetString("from")
		form.To, _ = cmd.Flags().GetString("to")
		form.Current, _ = cmd.Flags().GetBool("current")
		form.Description, _ = cmd.Flags().GetString("description")

		s := newSession()
		err := s.dispatcher.AddEducation(cmd.Context(), form)
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Profile.Education)
	},
}

var educationRmCmd = &cobra.Command{
	Use:   "rm <entry_id>",
	Short: "Remove an education entry by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.DeleteEducation(cmd.Context(), args[0])
		printAlerts(s.alerts)
		return err
	},
}

func init() {
	educationAddCmd.Flags().String("school", "", "school name")
	educationAddCmd.Flags().String("degree", "", "degree")
	educationAddCmd.Flags().String("field", "", "field of study")
	educationAddCmd.Flags().String("from", "", "start date, e.g. 2016-09-01")
	educationAddCmd.Flags().String("to", "", "end date")
	educationAddCmd.Flags().Bool("current", false, "currently enrolled")
	educationAddCmd.Flags().String("description", "", "description")

	educationCmd.AddCommand(educationAddCmd)
	educationCmd.AddCommand(educationRmCmd)
}

// --- github ---

var githubCmd = &cobra.Command{
	Use:   "github <username>",
	Short: "Show the latest public repositories for a github user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		err := s.dispatcher.GetGithubRepos(cmd.Context(), args[0])
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		return printJSON(s.store.State().Profile.Repos)
	},
}

// --- account ---

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete your account and profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			return fmt.Errorf("pass --confirm to delete your account, this cannot be undone")
		}

		s := newSession()
		err := s.dispatcher.DeleteAccount(cmd.Context())
		printAlerts(s.alerts)
		if err != nil {
			return err
		}
		clearToken()
		return nil
	},
}

func init() {
	accountDeleteCmd.Flags().Bool("confirm", false, "confirm account deletion")
	accountCmd.AddCommand(accountDeleteCmd)
}
