package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sethgrid/beagle/internal/app"
	"github.com/sethgrid/beagle/internal/art"
	"github.com/sethgrid/beagle/internal/config"
	"github.com/sethgrid/beagle/internal/controller"
	"github.com/sethgrid/beagle/internal/discovery"
	"github.com/sethgrid/beagle/internal/logging"
	"github.com/sethgrid/beagle/internal/page"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/sethgrid/beagle/internal/sim"
	"github.com/sethgrid/beagle/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
)

const Version = "v0.1.0"

var beagleNames = []string{
	"Biscuit",
	"Scout",
	"Waffles",
	"Pepper",
	"Rufus",
	"Maple",
}

func randomBeagleName() string {
	return beagleNames[rand.Intn(len(beagleNames))]
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "beagle",
		Short: "beagle - a small dog that lives at the bottom of your terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Println(Version)
				return nil
			}
			return runCmd.RunE(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to pet config file")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(animCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig finds and reads the pet config, falling back to the defaults
// when there is none.
func loadConfig() (pet.PetConfig, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return pet.PetConfig{}, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path, found, err := discovery.Resolve(configPath, cwd)
	if err != nil {
		return pet.PetConfig{}, "", err
	}
	if !found {
		return pet.DefaultConfig(), "", nil
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return pet.PetConfig{}, "", fmt.Errorf("failed to load pet: %w", err)
	}
	return cfg, path, nil
}

func newLogger(settings *config.Settings) *zap.Logger {
	return logging.NewOrNop(settings.Logging()).Logger
}

// flagOr prefers an explicitly set flag over the environment value.
func flagOr(cmd *cobra.Command, name string, env bool) bool {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}
	return env
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("touch", false, "Treat the pointer as touch-only (the pet paces instead of following)")
	cmd.Flags().Bool("reduced-motion", false, "Draw a still pet instead of animating")
	cmd.Flags().Bool("mute", false, "Disable sound")
	cmd.Flags().Int("fps", 0, "Frames per second (default from pet.toml)")
	cmd.Flags().String("page", "", "HTML page to show behind the pet")
	cmd.Flags().Bool("dark", false, "Start with the dark theme")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Let the beagle out",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		logger := newLogger(settings)
		defer logger.Sync()

		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		pagePath := settings.Page
		if cmd.Flags().Changed("page") {
			pagePath, _ = cmd.Flags().GetString("page")
		}
		pg := page.Default()
		if pagePath != "" {
			f, err := os.Open(pagePath)
			if err != nil {
				return fmt.Errorf("failed to open page: %w", err)
			}
			pg, err = page.Load(f)
			f.Close()
			if err != nil {
				return err
			}
		}

		fps := settings.FPS
		if cmd.Flags().Changed("fps") {
			fps, _ = cmd.Flags().GetInt("fps")
		}
		theme := controller.ThemeLight
		if dark, _ := cmd.Flags().GetBool("dark"); dark {
			theme = controller.ThemeDark
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialise terminal: %w", err)
		}
		screen.EnableMouse(tcell.MouseMotionEvents)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting", zap.String("config", path), zap.String("name", cfg.Name), zap.String("id", cfg.ID))
		a := app.New(screen, app.Options{
			Config:        cfg,
			Page:          pg,
			Theme:         theme,
			Touch:         flagOr(cmd, "touch", settings.Touch),
			ReducedMotion: flagOr(cmd, "reduced-motion", settings.ReducedMotion),
			Mute:          flagOr(cmd, "mute", settings.Mute),
			FPS:           fps,
			SessionPath:   discovery.SessionPathFor(path),
			Logger:        logger,
		})
		return a.Run(ctx)
	},
}

func init() {
	addRunFlags(runCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a pet config in .beagle/pet.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		force, _ := cmd.Flags().GetBool("force")

		var baseDir string
		if global {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			baseDir = home
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			baseDir = cwd
		}

		name := randomBeagleName()
		if len(args) == 1 {
			name = args[0]
		}

		path, err := storage.InitConfig(baseDir, name, time.Now(), force)
		if err != nil {
			return err
		}
		fmt.Printf("Beagle '%s' is ready (%s)\n", name, path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("global", false, "Create the config in the home directory")
	initCmd.Flags().Bool("force", false, "Replace an existing config")
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <script.toml>",
	Short: "Replay a scripted scenario headlessly and print the state changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(config.LoadOrDefault())
		defer logger.Sync()

		script, err := sim.LoadScript(args[0])
		if err != nil {
			return err
		}
		fps, _ := cmd.Flags().GetInt("fps")
		until, _ := cmd.Flags().GetDuration("until")

		trans := sim.Run(sim.NewController(script, logger), script, fps, until)
		return sim.Print(cmd.OutOrStdout(), script, trans)
	},
}

func init() {
	simulateCmd.Flags().Int("fps", 60, "Simulated frames per second")
	simulateCmd.Flags().Duration("until", 0, "Stop after this long (default: the script's duration)")
}

var animCmd = &cobra.Command{
	Use:   "anim [list|<state>]",
	Short: "Show the animation table or play a state's sprite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if args[0] == "list" {
			for _, s := range pet.AllStates {
				a := cfg.Animation(s)
				fmt.Fprintf(out, "%-16s %-9s frames=%d duration=%.2fs loop=%v\n",
					s, a.Sprite, a.Frames, a.Duration, a.Loop)
			}
			return nil
		}

		state := pet.State(args[0])
		if !state.Valid() {
			return fmt.Errorf("unknown state %q. Use 'beagle anim list' to see the states", args[0])
		}
		a := cfg.Animation(state)
		left, _ := cmd.Flags().GetBool("left")
		if static, _ := cmd.Flags().GetBool("static"); static {
			return art.Static(out, a.Sprite, left)
		}

		loops, _ := cmd.Flags().GetInt("loops")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return art.Play(ctx, out, a.Sprite, left, loops, a.FPS())
	},
}

func init() {
	animCmd.Flags().Bool("left", false, "Face left")
	animCmd.Flags().Bool("static", false, "Print the first frame only")
	animCmd.Flags().Int("loops", 3, "How many times to play the animation")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}
