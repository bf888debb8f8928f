package resolver

// Built-in provider names.
const (
	JSDelivr = "jsdelivr"
	Unpkg    = "unpkg"
	CDNJS    = "cdnjs"
	Skypack  = "skypack"
)

// Templates for the built-in public CDN providers. Skypack serves bare
// module URLs, so it drops the path segment when no path is requested.
var (
	JSDelivrTemplate = Template{Pattern: "https://cdn.jsdelivr.net/npm/{package}@{version}/{path}"}
	UnpkgTemplate    = Template{Pattern: "https://unpkg.com/{package}@{version}/{path}"}
	CDNJSTemplate    = Template{Pattern: "https://cdnjs.cloudflare.com/ajax/libs/{package}/{version}/{path}"}
	SkypackTemplate  = Template{Pattern: "https://cdn.skypack.dev/{package}@{version}/{path}", OmitEmptyPath: true}
)

// Builtin pairs a provider name with its resolver for ordered seeding.
type Builtin struct {
	Name     string
	Resolver Resolver
}

// Builtins returns the default provider set in priority order.
func Builtins() []Builtin {
	return []Builtin{
		{Name: JSDelivr, Resolver: JSDelivrTemplate},
		{Name: Unpkg, Resolver: UnpkgTemplate},
		{Name: CDNJS, Resolver: CDNJSTemplate},
		{Name: Skypack, Resolver: SkypackTemplate},
	}
}
