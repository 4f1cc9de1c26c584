package lint

import (
	"errors"
	"fmt"

	cahirperrors "github.com/aelto/cahirp/internal/errors"
	"github.com/aelto/cahirp/internal/export"
	"github.com/aelto/cahirp/internal/recipe"
)

// FromParseDiagnostics converts parser diagnostics into Warnings.
func FromParseDiagnostics(diags []*cahirperrors.ParseDiagnostic) []Warning {
	var out []Warning
	for _, d := range diags {
		out = append(out, Warning{
			Mod:       d.Mod,
			File:      d.File,
			Severity:  SeverityError,
			CheckName: "parse-error",
			Message:   d.Reason,
		})
	}
	return out
}

// CheckUnresolvedUses reports every use(key) whose key has no matching
// export(key) anywhere in the parsed corpus.
func CheckUnresolvedUses(directives []recipe.Directive) []Warning {
	var out []Warning
	for _, u := range export.UnresolvedUses(directives) {
		out = append(out, Warning{
			Mod:       u.Directive.SourceMod,
			File:      u.Directive.SourceFile,
			Severity:  SeverityError,
			CheckName: "unresolved-use",
			Message:   fmt.Sprintf("use(%s) has no matching export(%s)", u.Key, u.Key),
		})
	}
	return out
}

// CheckMissingFiles converts file-pool resolution failures into Warnings.
// Unlike an unresolved use, a missing file is not a build failure — it is
// reported at SeverityWarning.
func CheckMissingFiles(missing []error) []Warning {
	var out []Warning
	for _, err := range missing {
		var mf *cahirperrors.MissingFileError
		if !errors.As(err, &mf) {
			continue
		}
		out = append(out, Warning{
			Severity:  SeverityWarning,
			CheckName: "missing-file",
			Message:   mf.Error(),
		})
	}
	return out
}
