package graph

// GraphClient is the main client for turning input files into extraction
// payloads. It manages token encoding, file processing parallelism, and
// concurrent AI requests.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	tokenEncoder       string
	parallelFiles      int
	parallelAiRequests int
	maxRetries         int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// TokenEncoder specifies the tiktoken encoding used for chunk budgeting.
// ParallelFiles controls how many files can be processed in parallel.
// ParallelAiRequests controls how many AI requests can be executed concurrently.
// MaxRetries controls how often a failed extraction is retried before the
// fallback payload is used.
type NewGraphClientParams struct {
	TokenEncoder       string
	ParallelFiles      int
	ParallelAiRequests int
	MaxRetries         int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	params := graph.NewGraphClientParams{
//		TokenEncoder:       "o200k_base",
//		ParallelFiles:      2,
//		ParallelAiRequests: 8,
//	}
//	client, err := graph.NewGraphClient(params)
//	if err != nil {
//		log.Fatal(err)
//	}
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = "o200k_base"
	}
	parallelFiles := params.ParallelFiles
	if parallelFiles <= 0 {
		parallelFiles = 1
	}
	parallelAiRequests := params.ParallelAiRequests
	if parallelAiRequests <= 0 {
		parallelAiRequests = 1
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	g := &GraphClient{
		tokenEncoder:       encoder,
		parallelFiles:      parallelFiles,
		parallelAiRequests: parallelAiRequests,
		maxRetries:         maxRetries,
	}

	return g, nil
}
