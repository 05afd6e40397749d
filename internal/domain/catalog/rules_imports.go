package catalog

import (
	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

// legacyModules maps Python 2 stdlib module names to their Python 3 homes.
// Only clean renames belong here: a rewritten import must keep working
// without touching call sites beyond attribute names (md5, sha and the
// urllib split are deliberately absent).
var legacyModules = map[string]string{
	"urllib2":          "urllib.request",
	"urlparse":         "urllib.parse",
	"httplib":          "http.client",
	"Queue":            "queue",
	"ConfigParser":     "configparser",
	"SocketServer":     "socketserver",
	"SimpleHTTPServer": "http.server",
	"BaseHTTPServer":   "http.server",
	"CGIHTTPServer":    "http.server",
	"Tkinter":          "tkinter",
	"cPickle":          "pickle",
	"copy_reg":         "copyreg",
	"__builtin__":      "builtins",
	"StringIO":         "io",
	"cStringIO":        "io",
	"thread":           "_thread",
	"dummy_thread":     "_dummy_thread",
	"htmlentitydefs":   "html.entities",
	"HTMLParser":       "html.parser",
	"Cookie":           "http.cookies",
	"cookielib":        "http.cookiejar",
	"xmlrpclib":        "xmlrpc.client",
	"repr":             "reprlib",
	"commands":         "subprocess",
	"anydbm":           "dbm",
	"whichdb":          "dbm",
	"UserDict":         "collections",
	"UserList":         "collections",
	"UserString":       "collections",
}

func legacyImportRule() domain.Rule {
	keywords := make([]string, 0, len(legacyModules)*2)
	for from, to := range legacyModules {
		keywords = append(keywords, from, to)
	}

	return domain.Rule{
		ID:       "legacy-import",
		Category: domain.CategoryImports,
		Kind:     domain.KindTree,
		Summary:  "Renamed standard library modules",
		Explanation: "Python 3 reorganized the standard library: urllib2 became " +
			"urllib.request, ConfigParser became configparser, and so on. The import " +
			"statement is rewritten in place; plain, aliased, comma-separated and " +
			"from-imports are all handled via the recovered import table, so nested " +
			"and conditional imports are found too.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "import urllib2\n",
			Py3: "import urllib.request\n",
		},
		Keywords: keywords,
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for _, ref := range src.Imports {
				to, ok := legacyModules[ref.Module]
				if !ok {
					continue
				}
				matches = append(matches, domain.Match{
					RuleID:     "legacy-import",
					Line:       ref.Line,
					Col:        ref.Col,
					Start:      ref.Start,
					End:        ref.End,
					Text:       src.Text[ref.Start:ref.End],
					Suggestion: to,
				})
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}
