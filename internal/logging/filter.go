package logging

import (
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// filterEntry is one comma-separated "target=level" clause, or a bare
// "level" clause that sets the default for unmatched targets.
type filterEntry struct {
	target string
	level  zapcore.Level
}

// parseFilter parses an ISLAND_LOG-style filter string, e.g.
// "info,w3g=debug,pubsub=warn", returning the default level and any
// per-target overrides. Unparseable clauses are skipped.
func parseFilter(spec string) (zapcore.Level, map[string]zapcore.Level) {
	def := zapcore.InfoLevel
	overrides := map[string]zapcore.Level{}

	if spec == "" {
		return def, overrides
	}

	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if !strings.Contains(clause, "=") {
			if lvl, ok := parseLevel(clause); ok {
				def = lvl
			}
			continue
		}
		parts := strings.SplitN(clause, "=", 2)
		target := strings.TrimSpace(parts[0])
		lvl, ok := parseLevel(strings.TrimSpace(parts[1]))
		if !ok || target == "" {
			continue
		}
		overrides[target] = lvl
	}
	return def, overrides
}

func parseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		if n, err := strconv.Atoi(s); err == nil {
			return zapcore.Level(n), true
		}
		return 0, false
	}
}
