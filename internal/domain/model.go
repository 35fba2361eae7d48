// Package domain defines core business entities and value objects for copywriter.
//
// This file holds the provider selection model. A request resolves to exactly one
// backend: the primary chat-completions provider when its credential is present,
// otherwise the secondary generative provider, otherwise a configuration error.
package domain

// ProviderKind names a backend family.
type ProviderKind string

const (
	ProviderKindPrimary   ProviderKind = "deepseek"
	ProviderKindSecondary ProviderKind = "gemini"
)

// ProviderCredentials is the resolved credential/model set for one request.
type ProviderCredentials struct {
	PrimaryKey     string
	PrimaryModel   string
	PrimaryBaseURL string
	SecondaryKey   string
	SecondaryModel string
}

// ProviderSpec is a closed sum: PrimarySpec or SecondarySpec.
type ProviderSpec interface {
	Kind() ProviderKind
	ModelID() string
	isProviderSpec()
}

// PrimarySpec selects the chat-completions backend.
type PrimarySpec struct {
	Credential string
	Model      string
	BaseURL    string
}

func (PrimarySpec) Kind() ProviderKind { return ProviderKindPrimary }
func (s PrimarySpec) ModelID() string  { return s.Model }
func (PrimarySpec) isProviderSpec()    {}

// SecondarySpec selects the generative-content backend.
type SecondarySpec struct {
	Credential string
	Model      string
}

func (SecondarySpec) Kind() ProviderKind { return ProviderKindSecondary }
func (s SecondarySpec) ModelID() string  { return s.Model }
func (SecondarySpec) isProviderSpec()    {}

// ResolveProvider applies the precedence rule. It never touches the network.
func ResolveProvider(creds ProviderCredentials) (ProviderSpec, error) {
	switch {
	case creds.PrimaryKey != "":
		return PrimarySpec{
			Credential: creds.PrimaryKey,
			Model:      valueOr(creds.PrimaryModel, DefaultPrimaryModel),
			BaseURL:    valueOr(creds.PrimaryBaseURL, DefaultPrimaryBaseURL),
		}, nil
	case creds.SecondaryKey != "":
		return SecondarySpec{
			Credential: creds.SecondaryKey,
			Model:      valueOr(creds.SecondaryModel, DefaultSecondaryModel),
		}, nil
	default:
		return nil, ConfigurationError(MsgMissingCredentials)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
