package analysis

import "strings"

// Denylist is the set of package names considered unsafe to migrate
// automatically. It is policy data selected at build time (optionally
// extended via configuration), not computed state.
type Denylist struct {
	names map[string]bool
}

// NewDenylist creates a denylist from the given package names.
func NewDenylist(names ...string) Denylist {
	d := Denylist{names: make(map[string]bool, len(names))}
	for _, n := range names {
		d.names[n] = true
	}
	return d
}

// defaultDenylist names packages with complex linking requirements, system
// dependencies, or deep integration into other packages' build processes.
var defaultDenylist = []string{
	// SSL/TLS and cryptography
	"openssl@3", "openssl@1.1", "openssl", "libressl", "gnutls", "libssh2", "libssh",

	// Python versions
	"python@3.11", "python@3.12", "python@3.10", "python@3.9", "python@3.13",

	// Event and async libraries
	"libevent", "libuv", "libev",

	// HTTP/networking
	"nghttp2", "curl", "wget",

	// GLib/GObject ecosystem
	"gobject-introspection", "glib", "gdk-pixbuf", "gtk+3", "cairo", "pango",

	// Node.js versions
	"node@20", "node@18", "node@16", "node",

	// Database clients
	"postgresql@14", "postgresql@15", "postgresql@16", "mysql-client", "libpq",

	// Compression
	"zlib", "xz", "lz4", "zstd", "brotli",

	// Image formats
	"libpng", "libjpeg", "libtiff", "webp",

	// Unicode
	"icu4c",

	// Build tools
	"pkg-config", "cmake", "autoconf", "automake", "libtool",

	// Ruby versions
	"ruby@3.0", "ruby@3.1", "ruby@3.2", "ruby@3.3",

	// Other commonly problematic packages
	"gettext", "readline", "ncurses", "pcre", "pcre2",
}

// DefaultDenylist returns the built-in set of known-problematic packages.
func DefaultDenylist() Denylist {
	return NewDenylist(defaultDenylist...)
}

// Contains reports whether name is denylisted.
func (d Denylist) Contains(name string) bool { return d.names[name] }

// Len returns the number of denylisted names.
func (d Denylist) Len() int { return len(d.names) }

// With returns a copy of the denylist extended with the given names.
func (d Denylist) With(names ...string) Denylist {
	out := Denylist{names: make(map[string]bool, len(d.names)+len(names))}
	for n := range d.names {
		out.names[n] = true
	}
	for _, n := range names {
		out.names[n] = true
	}
	return out
}

// Without returns a copy of the denylist with the given names removed.
// Used for configuration overrides when an operator has verified a package
// migrates cleanly on their system.
func (d Denylist) Without(names ...string) Denylist {
	out := Denylist{names: make(map[string]bool, len(d.names))}
	for n := range d.names {
		out.names[n] = true
	}
	for _, n := range names {
		delete(out.names, n)
	}
	return out
}

// rationaleRule maps a package name (exact match) or name family (prefix
// match) to the reason it is unsafe to migrate. Exact rules take a name,
// prefix rules take a prefix; the first matching rule wins.
type rationaleRule struct {
	name   string
	prefix string
	reason string
}

var rationaleTable = []rationaleRule{
	{prefix: "openssl", reason: "Core SSL/TLS library - many packages link against it"},
	{name: "gnutls", reason: "GNU TLS library - system-level security dependency"},
	{name: "libressl", reason: "LibreSSL - alternative SSL library with wide usage"},
	{prefix: "libssh", reason: "SSH library - security-critical dependency"},

	{prefix: "python@", reason: "Python runtime - complex virtual environment and pip dependencies"},
	{name: "python", reason: "Python runtime - complex virtual environment and pip dependencies"},

	{name: "libevent", reason: "Event notification library - used by many network tools"},
	{name: "libuv", reason: "Async I/O library - core dependency for Node.js ecosystem"},
	{name: "libev", reason: "Event loop library - embedded in many applications"},

	{name: "nghttp2", reason: "HTTP/2 library - used by curl and many HTTP clients"},
	{name: "curl", reason: "URL transfer library - fundamental networking tool"},
	{name: "wget", reason: "Network downloader - may have complex SSL dependencies"},

	{name: "gobject-introspection", reason: "GObject introspection - required for many GTK/GNOME tools"},
	{name: "glib", reason: "GLib core library - foundation for GTK ecosystem"},
	{name: "gdk-pixbuf", reason: "Image loading library - part of GTK stack"},
	{prefix: "gtk", reason: "GTK/graphics library - complex native rendering dependencies"},
	{name: "cairo", reason: "GTK/graphics library - complex native rendering dependencies"},
	{name: "pango", reason: "GTK/graphics library - complex native rendering dependencies"},

	{prefix: "node", reason: "Node.js runtime - native modules require specific linking"},

	{prefix: "postgresql", reason: "PostgreSQL client - complex library dependencies"},
	{name: "libpq", reason: "PostgreSQL client - complex library dependencies"},
	{name: "mysql-client", reason: "MySQL client - database connectivity library"},

	{name: "zlib", reason: "Core compression library - nearly universal dependency"},
	{name: "xz", reason: "Compression library - widely linked by other packages"},
	{name: "lz4", reason: "Compression library - widely linked by other packages"},
	{name: "zstd", reason: "Compression library - widely linked by other packages"},
	{name: "brotli", reason: "Compression library - widely linked by other packages"},

	{name: "libpng", reason: "Image format library - many graphics tools depend on it"},
	{name: "libjpeg", reason: "Image format library - many graphics tools depend on it"},
	{name: "libtiff", reason: "Image format library - many graphics tools depend on it"},
	{name: "webp", reason: "Image format library - many graphics tools depend on it"},

	{name: "icu4c", reason: "Unicode library - heavily depended upon for internationalization"},

	{name: "pkg-config", reason: "Build configuration tool - used during compilation"},
	{name: "cmake", reason: "Build system - required for building many packages"},
	{name: "autoconf", reason: "GNU build tools - required for package compilation"},
	{name: "automake", reason: "GNU build tools - required for package compilation"},
	{name: "libtool", reason: "GNU build tools - required for package compilation"},

	{prefix: "ruby@", reason: "Ruby runtime - gem native extensions require specific linking"},
	{name: "ruby", reason: "Ruby runtime - gem native extensions require specific linking"},

	{name: "gettext", reason: "Internationalization library - widely used for translations"},
	{name: "readline", reason: "Command-line editing library - used by many CLI tools"},
	{name: "ncurses", reason: "Terminal UI library - fundamental for terminal apps"},
	{name: "pcre", reason: "Regular expression library - used by many text processing tools"},
	{name: "pcre2", reason: "Regular expression library - used by many text processing tools"},
}

// genericRationale covers denylisted names with no table entry, including
// operator-supplied additions from configuration.
const genericRationale = "Known to cause migration issues"

// Rationale returns the human-readable reason a package name is considered
// problematic. The lookup walks an ordered rule table so name families
// (e.g. "openssl@3", "python@3.12") share a single rationale.
func Rationale(name string) string {
	for _, r := range rationaleTable {
		if r.name != "" && r.name == name {
			return r.reason
		}
		if r.prefix != "" && strings.HasPrefix(name, r.prefix) {
			return r.reason
		}
	}
	return genericRationale
}
