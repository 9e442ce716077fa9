package scenario

import (
	"loadcmp/internal/bench"
)

// Scenario is a named benchmark configuration.
type Scenario struct {
	Name   string
	Config bench.Config
}

// Suite is the canned scenario set run by the single and compare
// commands, in order, against the demo-server surface.
func Suite(baseURL string, users, duration, rampUp int) []Scenario {
	return []Scenario{
		{Name: "Health Check", Config: Health(baseURL, users, duration, rampUp)},
		{Name: "REST API", Config: REST(baseURL, users, duration, rampUp)},
		{Name: "GraphQL", Config: GraphQL(baseURL, users, duration, rampUp)},
		{Name: "Mixed Load", Config: Mixed(baseURL, users, duration, rampUp)},
	}
}

func base(baseURL string, users, duration, rampUp int) bench.Config {
	return bench.Config{
		TargetURL:   baseURL,
		Users:       users,
		DurationSec: duration,
		RampUpSec:   rampUp,
		TimeoutSec:  bench.DefaultTimeoutSec,
	}
}

func Health(baseURL string, users, duration, rampUp int) bench.Config {
	cfg := base(baseURL, users, duration, rampUp)
	cfg.Endpoints = []bench.Endpoint{
		{Path: "/health", Method: "GET", Weight: 1.0},
	}
	return cfg
}

func REST(baseURL string, users, duration, rampUp int) bench.Config {
	cfg := base(baseURL, users, duration, rampUp)
	cfg.Endpoints = []bench.Endpoint{
		{Path: "/api/products", Method: "GET", Weight: 0.6},
		{
			Path:    "/api/products",
			Method:  "POST",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body:    `{"name":"Benchmark Product {{uuid}}","description":"Created during benchmark","price":99.99}`,
			Weight:  0.2,
		},
		{
			Path:    "/api/auth/login",
			Method:  "POST",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body:    `{"email":"benchmark@example.com","password":"BenchmarkPass123!"}`,
			Weight:  0.2,
		},
	}
	return cfg
}

func GraphQL(baseURL string, users, duration, rampUp int) bench.Config {
	cfg := base(baseURL, users, duration, rampUp)
	jsonHdr := map[string]string{"Content-Type": "application/json"}
	cfg.Endpoints = []bench.Endpoint{
		{Path: "/graphql", Method: "POST", Headers: jsonHdr, Body: `{"query":"query { health }"}`, Weight: 0.3},
		{Path: "/graphql", Method: "POST", Headers: jsonHdr, Body: `{"query":"query { products { id name price } }"}`, Weight: 0.4},
		{Path: "/graphql", Method: "POST", Headers: jsonHdr, Body: `{"query":"query { users { id email name } }"}`, Weight: 0.3},
	}
	return cfg
}

func Mixed(baseURL string, users, duration, rampUp int) bench.Config {
	cfg := base(baseURL, users, duration, rampUp)
	cfg.Endpoints = []bench.Endpoint{
		{Path: "/health", Method: "GET", Weight: 0.2},
		{Path: "/api/products", Method: "GET", Weight: 0.3},
		{
			Path:    "/graphql",
			Method:  "POST",
			Headers: map[string]string{"Content-Type": "application/json"},
			Body:    `{"query":"query { products { id name } }"}`,
			Weight:  0.3,
		},
		{Path: "/metrics", Method: "GET", Weight: 0.2},
	}
	return cfg
}
