package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"

	"cluedo/internal/config"
)

// deduceLogLevel is the level deductions are logged at, set from CLUE_LOG_LEVEL.
var deduceLogLevel = logrus.InfoLevel

// InitModule wires RPCs for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	env, err := config.ParseEnvMap(vars)
	if err != nil {
		return err
	}

	if level, err := logrus.ParseLevel(env.LogLevel); err != nil {
		logger.Warn("Unknown log level %q, using %s", env.LogLevel, deduceLogLevel)
	} else {
		deduceLogLevel = level
	}

	if err := config.LoadGameConfig(env.ConfigPath); err != nil {
		logger.Warn("Using classic deck: %v", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	logger.Info("Clue Go module loaded.")
	return nil
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcDeduce, rpcDeduce)
}
