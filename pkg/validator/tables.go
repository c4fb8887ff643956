package validator

import "regexp"

// This file holds the declarative pattern tables used by the metadata
// extractor and the rule categories. Keeping them in one place makes each
// entry independently testable and overridable from configuration.

// servicePattern maps a Vertex AI service to the code patterns that reveal
// its use. Detection is independent per service.
type servicePattern struct {
	Service  string
	Patterns []*regexp.Regexp
}

var serviceCatalog = []servicePattern{
	{
		Service: "AutoML",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`from google\.cloud import automl`),
			regexp.MustCompile(`automl\.AutoMlClient`),
			regexp.MustCompile(`AutoMLTabularTrainingJob`),
			regexp.MustCompile(`AutoMLImageTrainingJob`),
		},
	},
	{
		Service: "Pipelines",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`from google\.cloud import aiplatform`),
			regexp.MustCompile(`@kfp\.dsl\.pipeline`),
			regexp.MustCompile(`aiplatform\.PipelineJob`),
		},
	},
	{
		Service: "Custom Training",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`CustomTrainingJob`),
			regexp.MustCompile(`CustomContainerTrainingJob`),
		},
	},
	{
		Service: "Prediction",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\.predict\(`),
			regexp.MustCompile(`Endpoint\.deploy`),
			regexp.MustCompile(`Model\.deploy`),
		},
	},
	{
		Service: "Feature Store",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`aiplatform\.Featurestore`),
			regexp.MustCompile(`aiplatform\.EntityType`),
		},
	},
	{
		Service: "Model Registry",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`aiplatform\.Model\.upload`),
			regexp.MustCompile(`model_registry`),
		},
	},
}

// tagKeyword maps an inferred tag to the keywords that imply it. Matching is
// case-insensitive over the full notebook text.
type tagKeyword struct {
	Tag      string
	Keywords []string
}

var tagKeywordTable = []tagKeyword{
	{Tag: "automl", Keywords: []string{"automl"}},
	{Tag: "custom-training", Keywords: []string{"custom training", "customtrainingjob"}},
	{Tag: "pipelines", Keywords: []string{"pipeline", "kfp"}},
	{Tag: "prediction", Keywords: []string{"prediction", "endpoint"}},
	{Tag: "image-classification", Keywords: []string{"image classification"}},
	{Tag: "text-classification", Keywords: []string{"text classification"}},
	{Tag: "tabular", Keywords: []string{"tabular", "structured data"}},
}

// deprecatedAPI is a known deprecated identifier and its replacement.
type deprecatedAPI struct {
	Old             string
	New             string
	DeprecatedSince string
}

// deprecatedAPITable lists built-in deprecated identifiers, checked in order.
// Configuration can extend or override it.
var deprecatedAPITable = []deprecatedAPI{
	{Old: "google.cloud.automl_v1beta1", New: "google.cloud.automl_v1", DeprecatedSince: "2023-01-01"},
	{Old: "google.cloud.aiplatform.gapic", New: "google.cloud.aiplatform", DeprecatedSince: "2022-06-01"},
}

// pythonStdlibModules are top-level modules that never need a pip install.
var pythonStdlibModules = map[string]bool{
	"os": true, "sys": true, "re": true, "json": true, "time": true,
	"datetime": true, "pathlib": true, "typing": true, "collections": true,
	"itertools": true, "functools": true, "math": true, "random": true,
	"io": true, "csv": true, "logging": true, "unittest": true,
	"dataclasses": true,
}

// importPackageAliases maps import names to the pip package that provides
// them, for imports whose module name differs from the package name.
var importPackageAliases = map[string]string{
	"google":  "google-cloud-aiplatform",
	"sklearn": "scikit-learn",
	"cv2":     "opencv-python",
	"PIL":     "pillow",
}

// advancedCodePatterns count toward the difficulty score.
var advancedCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`class\s+\w+`), // class definitions
	regexp.MustCompile(`@\w+`),        // decorators
	regexp.MustCompile(`async\s+def`), // async functions
	regexp.MustCompile(`yield`),       // generators
	regexp.MustCompile(`lambda`),      // lambda functions
}

// Keyword sets for structure and metadata rules, matched case-insensitively
// against markdown text.
var (
	overviewKeywords = []string{"overview", "objective", "introduction", "what you'll learn", "goals"}
	setupKeywords    = []string{"setup", "installation", "install", "requirements", "prerequisites"}
	licenseKeywords  = []string{"license", "copyright", "apache", "mit"}
)

// hardcodedValuePattern is a built-in hardcoded-value detection pattern. The
// capture group holds the assigned value; a value starting with one of the
// placeholder prefixes is not a finding.
type hardcodedValuePattern struct {
	Pattern             *regexp.Regexp
	PlaceholderPrefixes []string
	Message             string
	Suggestion          string
}

var defaultHardcodedValuePatterns = []hardcodedValuePattern{
	{
		Pattern:             regexp.MustCompile(`project_id\s*=\s*["']([^"']+)["']`),
		PlaceholderPrefixes: []string{"YOUR_", "<", "{"},
		Message:             "Hardcoded project_id found. Use environment variable or parameter",
		Suggestion:          `Use: project_id = os.environ.get("PROJECT_ID", "YOUR_PROJECT_ID")`,
	},
	{
		Pattern:             regexp.MustCompile(`region\s*=\s*["']([^"']+)["']`),
		PlaceholderPrefixes: []string{"YOUR_", "<", "{"},
		Message:             "Hardcoded region found. Use environment variable or parameter",
		Suggestion:          `Use: region = os.environ.get("REGION", "YOUR_REGION")`,
	},
	{
		Pattern:    regexp.MustCompile(`(?:api_key|API_KEY)\s*=\s*["']([^"']+)["']`),
		Message:    "Hardcoded API key found. This is a security risk!",
		Suggestion: "Use environment variables or Secret Manager for credentials",
	},
}

// Shared extraction patterns.
var (
	pipInstallPattern    = regexp.MustCompile(`[!%]pip3?\s+install\s+(.+)`)
	importLinePattern    = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([a-zA-Z0-9_.]+)`)
	importPrefixPattern  = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+`)
	markdownLinkPattern  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	headingPattern       = regexp.MustCompile(`(?m)^(#{1,6})\s+.+`)
	h1Pattern            = regexp.MustCompile(`(?m)^#\s+.+`)
	authorPattern        = regexp.MustCompile(`(?i)(?:Author|By):\s*(.+)`)
	kernelPythonPattern  = regexp.MustCompile(`python(\d+)`)
	colabLinkPattern     = regexp.MustCompile(`https://colab\.research\.google\.com/[^\s)"']+`)
	workbenchLinkPattern = regexp.MustCompile(`https://console\.cloud\.google\.com/vertex-ai/workbench/[^\s)"']+`)
	extrasBracketPattern = regexp.MustCompile(`\[[^\]]*\]$`)
)

// versionOperators are dependency specifier operators in priority order; the
// first operator found in a token wins. Only == pins a version.
var versionOperators = []string{"==", ">=", "<=", "~="}
