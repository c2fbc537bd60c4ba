package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/evaaz/schoolctl/client"
	"github.com/evaaz/schoolctl/directory"
	"github.com/evaaz/schoolctl/export"
	"github.com/evaaz/schoolctl/filter"
	"github.com/evaaz/schoolctl/internal/config"
	"github.com/evaaz/schoolctl/session"
)

var apiURL string
var debug bool

const requestTimeout = 15 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schoolctl",
		Short: "لوحة تحكم نظام إدارة المدارس",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the school registry API (overrides SCHOOL_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// app wires the session store, API client, and directory service for
// one command invocation. The persisted session is restored before the
// command body runs.
type app struct {
	cfg  *config.Config
	sess *session.Store
	dir  *directory.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !debug {
		zerolog.SetGlobalLevel(cfg.Level())
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	backend, err := session.NewDirBackend(cfg.StateDir)
	if err != nil {
		return nil, err
	}
	api := client.New(cfg.APIBaseURL, client.WithDebugLogging(debug))
	sess := session.NewStore(backend, api)
	if sess.Restore() {
		log.Debug().Msg("session restored")
	}
	return &app{cfg: cfg, sess: sess, dir: directory.NewService(sess, api)}, nil
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "تسجيل الدخول إلى النظام",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if username == "" {
				username = prompt(cmd, "اسم المستخدم: ")
			}
			if password == "" {
				password = prompt(cmd, "كلمة المرور: ")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if !a.sess.Login(ctx, username, password) {
				fmt.Fprintln(cmd.OutOrStdout(), msgInvalidCredentials)
				return nil
			}
			user, _ := a.sess.User()
			fmt.Fprintf(cmd.OutOrStdout(), "تم تسجيل الدخول: %s (%s)\n", user.Name, user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Operator username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Operator password (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "تسجيل الخروج",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.sess.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "تم تسجيل الخروج")
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "عرض حالة الجلسة الحالية",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, ok := a.sess.User()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), msgNotLoggedIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Name, user.Username)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "عرض جميع المدارس",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			schools, err := a.dir.FetchAll(ctx)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), fetchMessage(err))
				return nil
			}
			if len(schools) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), msgNoSchools)
				return nil
			}
			renderHeader(cmd, "جميع المدارس", len(schools))
			renderSchools(cmd, schools)
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	var crit filter.Criteria

	cmd := &cobra.Command{
		Use:   "search",
		Short: "البحث في المدارس حسب المعايير",
		RunE: func(cmd *cobra.Command, args []string) error {
			if crit.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), msgNeedCriterion)
				return nil
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			schools, err := a.dir.FetchAll(ctx)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), fetchMessage(err))
				return nil
			}
			results := filter.Apply(schools, crit)
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), msgNoResults)
				return nil
			}
			renderHeader(cmd, "نتائج البحث", len(results))
			renderSchools(cmd, results)
			return nil
		},
	}

	addCriteriaFlags(cmd, &crit)
	return cmd
}

func newExportCmd() *cobra.Command {
	var crit filter.Criteria
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "تصدير المدارس إلى ملف Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			schools, err := a.dir.FetchAll(ctx)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), fetchMessage(err))
				return nil
			}
			if !crit.IsZero() {
				schools = filter.Apply(schools, crit)
			}

			data, err := export.Encode(schools)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "تم تصدير %s مدرسة إلى %s\n", countToken(len(schools)), out)
			return nil
		},
	}

	addCriteriaFlags(cmd, &crit)
	cmd.Flags().StringVarP(&out, "out", "o", export.FileName, "Output file path")
	return cmd
}

func addCriteriaFlags(cmd *cobra.Command, crit *filter.Criteria) {
	cmd.Flags().StringVar(&crit.SchoolName, "name", "", "اسم المدرسة")
	cmd.Flags().StringVar(&crit.City, "city", "", "المدينة")
	cmd.Flags().StringVar(&crit.ContractManagerName, "manager", "", "اسم مدير العقد")
	cmd.Flags().StringVar(&crit.PhoneNumber, "phone", "", "رقم الهاتف")
	cmd.Flags().StringVar(&crit.Email, "email", "", "البريد الإلكتروني")
}

// fetchMessage maps a directory error to its user-facing message.
// Every failure surfaces as an inline string and leaves the tool in a
// retryable state.
func fetchMessage(err error) string {
	if errors.Is(err, directory.ErrNotAuthenticated) {
		return msgNotLoggedIn
	}
	return msgLoadFailed
}

func prompt(cmd *cobra.Command, label string) string {
	fmt.Fprint(cmd.OutOrStdout(), label)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
