package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sops-ai/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sops-ai/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `View and edit settings stored in the configuration file.

Settings can be named by config key (pinecone.index_name) or environment
variable (PINECONE_INDEX_NAME). Values in the process environment or a .env
file take precedence over the configuration file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the stored value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store a setting",
	Long: `Store a setting in the configuration file. When the value of an API key
or access token is omitted it is read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Println(current.configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Configuration file: %s\n\n", current.configStore.Path())
	for _, setting := range env.Settings {
		value := displayValue(setting, current.configStore.GetString(setting.Key))
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %-24s %s\n", setting.Key, value)
	}
	if n := current.configStore.GetInt(env.BatchSizeKey); n > 0 {
		cmd.Printf("  %-24s %d\n", env.BatchSizeKey, n)
	} else {
		cmd.Printf("  %-24s (not set)\n", env.BatchSizeKey)
	}

	var unknown []string
	for _, key := range current.configStore.Keys() {
		if _, err := resolveKey(key); err != nil {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		cmd.Printf("\nIgnored keys: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key, err := resolveKey(args[0])
	if err != nil {
		return err
	}
	v, ok := current.configStore.Get(key)
	if !ok {
		return fmt.Errorf("%s is not set", key)
	}
	cmd.Println(v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, err := resolveKey(args[0])
	if err != nil {
		return err
	}

	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else {
		cmd.Printf("Enter value for %s: ", key)
		if isSecretKey(key) {
			raw = readPassword()
			cmd.Println()
		} else {
			raw = readLine(bufio.NewReader(cmd.InOrStdin()))
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("value must not be empty")
	}

	var value any = raw
	if key == env.BatchSizeKey {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		value = n
	}

	if err := current.configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	for _, setting := range env.Settings {
		if setting.Key != key {
			continue
		}
		origin, err := current.settings.Origin(setting)
		if err == nil && origin != "config" {
			cmd.Printf("Note: %s is overridden by %s.\n", key, originLabel(origin, setting))
		}
	}

	cmd.Printf("Saved %s\n", key)
	return nil
}

// resolveKey maps a config key or environment variable name to a config key.
func resolveKey(name string) (string, error) {
	if name == env.BatchSizeKey {
		return name, nil
	}
	for _, setting := range env.Settings {
		if name == setting.Key || strings.EqualFold(name, setting.Env) {
			return setting.Key, nil
		}
	}
	return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, name)
}

func originLabel(origin string, setting env.Setting) string {
	if origin == "env" {
		return "the " + setting.Env + " environment variable"
	}
	return "the " + origin + " file"
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".api_key") || strings.HasSuffix(key, ".access_token")
}

// displayValue masks API keys and access tokens.
func displayValue(setting env.Setting, value string) string {
	if isSecretKey(setting.Key) {
		return env.Mask(value)
	}
	return value
}

// effectiveValue returns the resolved value of a setting.
func effectiveValue(cfg *domain.AppConfig, envName string) string {
	switch envName {
	case domain.EnvTavilyAPIKey:
		return cfg.TavilyAPIKey
	case domain.EnvOpenAIAPIKey:
		return cfg.OpenAIAPIKey
	case domain.EnvEmbeddingModel:
		return cfg.EmbeddingModel
	case domain.EnvPineconeAPIKey:
		return cfg.PineconeAPIKey
	case domain.EnvPineconeIndexName:
		return cfg.PineconeIndexName
	case domain.EnvPineconeCloud:
		return cfg.PineconeCloud
	case domain.EnvPineconeRegion:
		return cfg.PineconeRegion
	case domain.EnvRequestServerURL:
		return cfg.RequestServerURL
	case domain.EnvRequestAccessToken:
		return cfg.RequestAccessToken
	default:
		return ""
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
