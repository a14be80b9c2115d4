package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func payload(domain string, kv map[string]interface{}) map[string]interface{} {
	p := map[string]interface{}{
		"PayloadType":        domain,
		"PayloadUUID":        "6F1D5F8E-0000-0000-0000-000000000000",
		"PayloadIdentifier":  "com.example." + domain,
		"PayloadVersion":     1,
		"PayloadDisplayName": domain,
		"PayloadEnabled":     true,
	}
	for k, v := range kv {
		p[k] = v
	}
	return p
}

func writeProfile(t *testing.T, format int, payloads ...interface{}) string {
	t.Helper()
	root := map[string]interface{}{
		"PayloadType":        "Configuration",
		"PayloadDisplayName": "Test Profile",
		"PayloadContent":     payloads,
	}
	data, err := plist.MarshalIndent(root, format, "\t")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "test.mobileconfig")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads xml profiles", func(t *testing.T) {
		path := writeProfile(t, plist.XMLFormat, payload("com.apple.MCX", map[string]interface{}{"DisableGuestAccount": true}))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, "XML", doc.Format)
		assert.Equal(t, "Test Profile", doc.Root["PayloadDisplayName"])
	})

	t.Run("reads binary profiles", func(t *testing.T) {
		path := writeProfile(t, plist.BinaryFormat)

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Binary", doc.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.mobileconfig"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not a property list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.mobileconfig")
		require.NoError(t, os.WriteFile(path, []byte("<plist><dict><key>"), 0644))

		_, err := Load(path)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, path, le.Path)
	})

	t.Run("root must be a dictionary", func(t *testing.T) {
		data, err := plist.Marshal([]interface{}{"a"}, plist.XMLFormat)
		require.NoError(t, err)

		_, err = Parse(data)
		var le *LoadError
		assert.ErrorAs(t, err, &le)
	})

	t.Run("signed profiles are called out", func(t *testing.T) {
		data := append([]byte{0x30, 0x80, 0x06, 0x09}, []byte(`<?xml version="1.0"?><plist version="1.0"><dict/></plist>`)...)
		_, err := Parse(data)
		assert.ErrorIs(t, err, ErrSignedProfile)
	})
}

func TestExtract(t *testing.T) {
	load := func(t *testing.T, payloads ...interface{}) []DomainPayload {
		t.Helper()
		doc, err := Load(writeProfile(t, plist.XMLFormat, payloads...))
		require.NoError(t, err)
		return Extract(doc)
	}

	t.Run("strips metadata keys", func(t *testing.T) {
		domains := load(t, payload("com.apple.MCX", map[string]interface{}{
			"DisableGuestAccount": true,
			"PayloadOrganization": "Example",
			"PayloadDescription":  "desc",
		}))
		require.Len(t, domains, 1)
		assert.Equal(t, "com.apple.MCX", domains[0].Domain)
		assert.Equal(t, map[string]interface{}{"DisableGuestAccount": true}, domains[0].Settings)
		for k := range domains[0].Settings {
			assert.False(t, IsMetadataKey(k), k)
		}
	})

	t.Run("merges same domain with later values winning", func(t *testing.T) {
		domains := load(t,
			payload("com.apple.screensaver", map[string]interface{}{"idleTime": uint64(300), "askForPassword": true}),
			payload("com.apple.MCX", map[string]interface{}{"DisableGuestAccount": true}),
			payload("com.apple.screensaver", map[string]interface{}{"idleTime": uint64(600)}),
		)
		require.Len(t, domains, 2)
		assert.Equal(t, "com.apple.screensaver", domains[0].Domain)
		assert.Equal(t, "com.apple.MCX", domains[1].Domain)
		assert.Equal(t, uint64(600), domains[0].Settings["idleTime"])
		assert.Equal(t, true, domains[0].Settings["askForPassword"])
		assert.Equal(t, 2, domains[0].Sources)
	})

	t.Run("skips configuration wrapper and untyped entries", func(t *testing.T) {
		domains := load(t,
			payload("Configuration", map[string]interface{}{"Foo": "bar"}),
			map[string]interface{}{"NoType": true},
			"not a dictionary",
		)
		assert.Empty(t, domains)
	})

	t.Run("metadata-only payload contributes no domain", func(t *testing.T) {
		domains := load(t, payload("com.apple.empty", nil))
		assert.Empty(t, domains)
	})

	t.Run("empty payload content", func(t *testing.T) {
		domains := load(t)
		assert.Empty(t, domains)
	})

	t.Run("missing payload content", func(t *testing.T) {
		assert.Empty(t, Extract(&Document{Root: map[string]interface{}{}}))
		assert.Empty(t, Extract(nil))
	})
}
