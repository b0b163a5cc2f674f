package schema

import (
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"github.com/aldzban/ambient/codec"
	"github.com/aldzban/ambient/semantic"
)

// SerializePackageSchema returns the JSON schema of the resolved-package
// document format, for engine and editor integrations that consume it.
func SerializePackageSchema() ([]byte, error) {
	packageSchema := jsonschema.Reflect(&semantic.PackageDoc{})
	schema, err := packageSchema.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "package document must be json serializable")
	}
	return schema, nil
}

// Diff compares two resolved packages and returns the JSON patch that turns
// the first into the second. An empty patch means the packages declare the
// same schema.
func Diff(before, after *semantic.Package) (jsondiff.Patch, error) {
	beforeBz, err := codec.Encode(before.Document())
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode package")
	}
	afterBz, err := codec.Encode(after.Document())
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode package")
	}
	patch, err := jsondiff.CompareJSON(beforeBz, afterBz)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return patch, nil
}

// Equal reports whether two resolved packages declare the same schema.
func Equal(a, b *semantic.Package) (bool, error) {
	patch, err := Diff(a, b)
	if err != nil {
		return false, err
	}
	return len(patch) == 0, nil
}
