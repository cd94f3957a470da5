package entity

type Provider string

const (
	ProviderApple  Provider = "APPLE"
	ProviderGoogle Provider = "GOOGLE"
	ProviderAmazon Provider = "AMAZON"
	ProviderHuawei Provider = "HUAWEI"
)

var providers = []Provider{
	ProviderApple,
	ProviderGoogle,
	ProviderAmazon,
	ProviderHuawei,
}

func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ParseProvider matches name case-sensitively against the known provider names.
func ParseProvider(name string) (Provider, bool) {
	for _, p := range providers {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

func (p Provider) String() string {
	return string(p)
}
