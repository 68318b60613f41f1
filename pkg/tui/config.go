package tui

import (
	"fmt"
	"strings"
	"time"

	"protokollctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		// Edit the file values only, env overrides must not be persisted
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Default Scrape Settings", "scrape"),
						huh.NewOption("Set Default Output File", "output"),
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Log Level", "log"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "scrape":
			err = runSetScrapeDefaultsTUI(cfg)
		case "output":
			err = runSetOutputTUI(cfg)
		case "theme":
			err = runSetThemeTUI(cfg)
		case "log":
			err = runSetLogLevelTUI(cfg)
		case "view":
			PrintConfig(cfg)
		}

		if err != nil {
			return err
		}
	}
}

// PrintConfig prints the effective settings of cfg
func PrintConfig(cfg *config.AppConfig) {
	opts := cfg.ScrapeDefaults()

	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.protokollctl.json) ---"))
	fmt.Printf("Start pageId: %d\n", opts.StartID)
	fmt.Printf("Max pages: %d\n", opts.MaxPages)
	fmt.Printf("Miss limit: %d\n", opts.MissLimit)
	fmt.Printf("Delay: %s\n", opts.Delay)
	fmt.Printf("Uni/Ort filter: %s\n", orNone(opts.Filter.OrtUni))
	fmt.Printf("Fach filter: %s\n", orNone(opts.Filter.Fach))
	fmt.Printf("Output file: %s\n", cfg.Output())
	fmt.Printf("Accent Color: %s\n", orNone(cfg.AccentColor))
	fmt.Printf("Log level: %s\n", orNone(cfg.LogLevel))
	fmt.Println()
}

func orNone(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

func runSetScrapeDefaultsTUI(cfg *config.AppConfig) error {
	settings := newScrapeSettings(cfg.ScrapeDefaults())
	if err := settings.Form().WithTheme(GetTheme()).Run(); err != nil {
		return err
	}

	opts, err := settings.Options()
	if err != nil {
		return err
	}

	cfg.StartID = config.IntPtr(opts.StartID)
	cfg.MaxPages = opts.MaxPages
	cfg.MissLimit = opts.MissLimit
	cfg.DelayMS = config.IntPtr(int(opts.Delay / time.Millisecond))
	cfg.OrtUniFilter = opts.Filter.OrtUni
	cfg.FachFilter = opts.Filter.Fach

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Default scrape settings saved.\n"))
	return nil
}

func runSetOutputTUI(cfg *config.AppConfig) error {
	output := cfg.Output()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default spreadsheet file").
				Value(&output).
				Validate(func(s string) error {
					if !strings.HasSuffix(s, ".xlsx") {
						return fmt.Errorf("file name must end in .xlsx")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.OutputFile = output
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Results will be exported to: %s\n", output)))
	return nil
}

func runSetLogLevelTUI(cfg *config.AppConfig) error {
	level := cfg.LogLevel

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Description("Logs are written to ~/.protokollctl/protokollctl.log").
				Options(
					huh.NewOption("Debug (every page)", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warnings only", "warn"),
				).
				Value(&level),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.LogLevel = level
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Log level set to %s (applies on next start).\n", level)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(s string) error {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
