// Package product holds the static table of known JetBrains products.
// It performs no I/O; discovery resolves the table against the filesystem.
package product

// Product describes one JetBrains product family.
//
// Each IDE release writes its configuration under a directory named
// <ConfigPrefix><version>, e.g. GoLand2024.2. RecentProjectsFiles are
// relative to that directory, newest record format first.
type Product struct {
	Code                string   `yaml:"code"`
	Name                string   `yaml:"name"`
	ConfigPrefix        string   `yaml:"config_prefix"`
	ExecutableNames     []string `yaml:"executable_names"`
	RecentProjectsFiles []string `yaml:"recent_projects_files,omitempty"`
}

// defaultRecentProjectsFiles covers both record generations: the current
// RecentProjectsManager format and the pre-2020 flat directory list.
var defaultRecentProjectsFiles = []string{
	"options/recentProjects.xml",
	"options/recentProjectDirectories.xml",
}

var builtins = []Product{
	{Code: "IU", Name: "IntelliJ IDEA", ConfigPrefix: "IntelliJIdea", ExecutableNames: []string{"idea", "intellij-idea-ultimate"}},
	{Code: "IC", Name: "IntelliJ IDEA Community", ConfigPrefix: "IdeaIC", ExecutableNames: []string{"idea", "idea-ce", "intellij-idea-community"}},
	{Code: "PY", Name: "PyCharm", ConfigPrefix: "PyCharm", ExecutableNames: []string{"pycharm", "pycharm-professional"}},
	{Code: "PC", Name: "PyCharm Community", ConfigPrefix: "PyCharmCE", ExecutableNames: []string{"pycharm", "pycharm-community"}},
	{Code: "GO", Name: "GoLand", ConfigPrefix: "GoLand", ExecutableNames: []string{"goland"}},
	{Code: "CL", Name: "CLion", ConfigPrefix: "CLion", ExecutableNames: []string{"clion"}},
	{Code: "WS", Name: "WebStorm", ConfigPrefix: "WebStorm", ExecutableNames: []string{"webstorm"}},
	{Code: "PS", Name: "PhpStorm", ConfigPrefix: "PhpStorm", ExecutableNames: []string{"phpstorm"}},
	{Code: "RM", Name: "RubyMine", ConfigPrefix: "RubyMine", ExecutableNames: []string{"rubymine"}},
	{Code: "RD", Name: "Rider", ConfigPrefix: "Rider", ExecutableNames: []string{"rider"}},
	{Code: "DB", Name: "DataGrip", ConfigPrefix: "DataGrip", ExecutableNames: []string{"datagrip"}},
	{Code: "RR", Name: "RustRover", ConfigPrefix: "RustRover", ExecutableNames: []string{"rustrover"}},
	{Code: "AI", Name: "Android Studio", ConfigPrefix: "AndroidStudio", ExecutableNames: []string{"studio", "android-studio"}},
}

// Builtins returns a copy of the built-in product table.
func Builtins() []Product {
	out := make([]Product, len(builtins))
	copy(out, builtins)
	for i := range out {
		out[i] = out[i].withDefaults()
	}
	return out
}

func (p Product) withDefaults() Product {
	if len(p.RecentProjectsFiles) == 0 {
		p.RecentProjectsFiles = append([]string(nil), defaultRecentProjectsFiles...)
	}
	return p
}

// valid reports whether a definition carries the fields discovery needs.
func (p Product) valid() bool {
	return p.Code != "" && p.Name != "" && p.ConfigPrefix != ""
}
