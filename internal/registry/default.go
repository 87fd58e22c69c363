package registry

// osVersions ties each version token to the one operating system it can
// appear under. The cross product of os and version is otherwise mostly
// impossible, which would poison enumeration for keys referencing both.
var osVersions = map[string]string{
	"6.1.7601":     "win",
	"10.0.15063":   "win",
	"OS X 10.10.5": "mac",
	"Ubuntu 16.04": "linux",
}

func defaultDimensions() []Dimension {
	return []Dimension{
		{Name: "os", Values: []string{"win", "linux", "mac", "android"}},
		{Name: "version", Values: []string{"6.1.7601", "10.0.15063", "OS X 10.10.5", "Ubuntu 16.04"}},
		{Name: "processor", Values: []string{"x86", "x86_64"}},
		{Name: "bits", Values: []string{"32", "64"}},
		{Name: "debug", Boolean: true},
		{Name: "webrender", Boolean: true},
		{Name: "e10s", Boolean: true},
	}
}

func defaultInvalid() []Combo {
	oses := []string{"win", "linux", "mac", "android"}
	var combos []Combo
	for version, owner := range osVersions {
		for _, os := range oses {
			if os != owner {
				combos = append(combos, Combo{"os": os, "version": version})
			}
		}
	}
	return combos
}

// Default returns the built-in registry covering the expectation corpus
// this tool was written for.
func Default() *Registry {
	r, err := New(defaultDimensions(), defaultInvalid())
	if err != nil {
		panic("registry: built-in default is invalid: " + err.Error())
	}
	return r
}
