package cli

import (
	"strconv"
	"strings"

	envparse "github.com/caarlos0/env/v11"

	"github.com/codex-k8s/attrorder/internal/env"
)

// baseEnv defines root CLI defaults sourced from ATTRORDER_* env vars.
type baseEnv struct {
	// ConfigPath is the attrorder.yaml path from ATTRORDER_CONFIG.
	ConfigPath string `env:"ATTRORDER_CONFIG"`
}

// overrideEnv holds config overrides from ATTRORDER_* vars, including those
// defined in the config's envFiles.
type overrideEnv struct {
	// Scene is the scene file from ATTRORDER_SCENE.
	Scene string `env:"ATTRORDER_SCENE"`
	// LogLevel is the logging level from ATTRORDER_LOG_LEVEL.
	LogLevel string `env:"ATTRORDER_LOG_LEVEL"`
	// Strategy is the move backend from ATTRORDER_STRATEGY.
	Strategy string `env:"ATTRORDER_STRATEGY"`
	// Validation is the validation mode from ATTRORDER_VALIDATION.
	Validation string `env:"ATTRORDER_VALIDATION"`
	// Quiet toggles echo suppression from ATTRORDER_QUIET.
	Quiet string `env:"ATTRORDER_QUIET"`
	// Report is the up/down report file from ATTRORDER_REPORT.
	Report string `env:"ATTRORDER_REPORT"`
}

// parseEnv fills target from the process environment via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// parseEnvFrom fills target from vars instead of the process environment.
func parseEnvFrom(target interface{}, vars env.Vars) error {
	return envparse.ParseWithOptions(target, envparse.Options{Environment: map[string]string(vars)})
}

// parseEnvBool parses a boolean string and reports if it was present and valid.
func parseEnvBool(value string) (bool, bool) {
	if strings.TrimSpace(value) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}
