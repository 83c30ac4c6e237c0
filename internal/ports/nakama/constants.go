package nakama

const (
	// RpcDeduce is the Nakama RPC id clients call to replay evidence for one or more guesses.
	RpcDeduce = "clue_deduce"
)

// Nakama runtime error codes (gRPC status codes).
const (
	errCodeInvalidArgument    = 3
	errCodeFailedPrecondition = 9
	errCodeInternal           = 13
)
