package admin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_String(t *testing.T) {
	r := NewResolver(MapEnv{"A": "x", "EMPTY": ""})

	v, ok := r.String("A")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = r.String("EMPTY")
	assert.True(t, ok, "set-but-empty is still present")
	assert.Equal(t, "", v)

	_, ok = r.String("MISSING")
	assert.False(t, ok)
}

func TestResolver_Bool(t *testing.T) {
	tests := []struct {
		name    string
		env     MapEnv
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "unset uses default true", env: MapEnv{}, def: true, want: true},
		{name: "unset uses default false", env: MapEnv{}, def: false, want: false},
		{name: "true", env: MapEnv{"FLAG_NPS": "true"}, def: false, want: true},
		{name: "false", env: MapEnv{"FLAG_NPS": "false"}, def: true, want: false},
		{name: "empty is rejected", env: MapEnv{"FLAG_NPS": ""}, def: true, want: true, wantErr: true},
		{name: "blank is rejected", env: MapEnv{"FLAG_NPS": "  "}, def: true, want: true, wantErr: true},
		{name: "upper case is rejected", env: MapEnv{"FLAG_NPS": "TRUE"}, def: false, want: false, wantErr: true},
		{name: "padding is rejected", env: MapEnv{"FLAG_NPS": " false "}, def: true, want: true, wantErr: true},
		{name: "yes is rejected", env: MapEnv{"FLAG_NPS": "yes"}, def: true, want: true, wantErr: true},
		{name: "1 is rejected", env: MapEnv{"FLAG_NPS": "1"}, def: false, want: false, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.env).Bool("FLAG_NPS", tt.def)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBoolean)
				var ce *ConfigError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, []string{"FLAG_NPS"}, ce.Vars)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolver_List(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "plain", raw: "k1,k2", want: []string{"k1", "k2"}},
		{name: "single", raw: "only", want: []string{"only"}},
		{name: "spaces", raw: " k1 , k2 ", want: []string{"k1", "k2"}},
		{name: "brackets", raw: "[k1, k2]", want: []string{"k1", "k2"}},
		{name: "quoted", raw: `["k1","k2"]`, want: []string{"k1", "k2"}},
		{name: "empty element", raw: "k1,,k2", wantErr: true},
		{name: "trailing comma", raw: "k1,", wantErr: true},
		{name: "empty brackets", raw: "[]", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, from, err := NewResolver(MapEnv{"KEYS": tt.raw}).List("KEYS")
			assert.Equal(t, "KEYS", from)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidList)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ListFallbackChain(t *testing.T) {
	r := NewResolver(MapEnv{"B": "b1", "C": "c1"})
	got, from, err := r.List("A", "B", "C")
	require.NoError(t, err)
	assert.Equal(t, "B", from)
	assert.Equal(t, []string{"b1"}, got)

	r = NewResolver(MapEnv{"A": "", "C": "c1"})
	got, from, err = r.List("A", "B", "C")
	assert.ErrorIs(t, err, ErrInvalidList, "a present blank candidate stops the chain")
	assert.Equal(t, "A", from)
	assert.Nil(t, got)

	got, from, err = NewResolver(MapEnv{}).List("A", "B")
	assert.NoError(t, err)
	assert.Empty(t, from)
	assert.Nil(t, got)
}

func TestResolver_ListChainStopsAtMalformed(t *testing.T) {
	_, from, err := NewResolver(MapEnv{"A": ",", "B": "b1"}).List("A", "B")
	assert.ErrorIs(t, err, ErrInvalidList)
	assert.Equal(t, "A", from)
}

func TestSnapshot(t *testing.T) {
	t.Setenv("ADMIN_SNAPSHOT_CHECK", "before")

	snap, err := NewSnapshot()
	require.NoError(t, err)

	v, ok := snap.Lookup("ADMIN_SNAPSHOT_CHECK")
	require.True(t, ok)
	assert.Equal(t, "before", v)

	t.Setenv("ADMIN_SNAPSHOT_CHECK", "after")
	t.Setenv("ADMIN_SNAPSHOT_LATE", "x")

	v, _ = snap.Lookup("ADMIN_SNAPSHOT_CHECK")
	assert.Equal(t, "before", v, "snapshot must not see later writes")
	_, ok = snap.Lookup("ADMIN_SNAPSHOT_LATE")
	assert.False(t, ok)
}

func TestReadDotenv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.env")
	second := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(first, []byte("ADMIN_JWT_SECRET=s1\nAPP_KEYS=k1,k2\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("ADMIN_JWT_SECRET=s9\n"), 0o600))

	env, err := ReadDotenv(first, second)
	require.NoError(t, err)
	assert.Equal(t, "s9", env[EnvAdminJWTSecret])
	assert.Equal(t, "k1,k2", env[EnvAppKeys])

	_, err = ReadDotenv(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestLayered(t *testing.T) {
	env := Layered{
		MapEnv{EnvAdminJWTSecret: "from-process", EnvFlagNPS: ""},
		nil,
		MapEnv{EnvAdminJWTSecret: "from-file", EnvFlagNPS: "true", EnvAppKeys: "k1"},
	}

	v, ok := env.Lookup(EnvAdminJWTSecret)
	assert.True(t, ok)
	assert.Equal(t, "from-process", v)

	v, ok = env.Lookup(EnvFlagNPS)
	assert.True(t, ok, "blank in an earlier layer still hides later ones")
	assert.Equal(t, "", v)

	v, _ = env.Lookup(EnvAppKeys)
	assert.Equal(t, "k1", v)

	_, ok = env.Lookup("UNSET_ANYWHERE")
	assert.False(t, ok)
}

func TestAssemble_SnapshotOverDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"ADMIN_JWT_SECRET=file-secret\nAPI_TOKEN_SALT=s2\nTRANSFER_TOKEN_SALT=s3\nENCRYPTION_KEY=s4\nAPP_KEYS=k1,k2\n",
	), 0o600))
	for _, name := range []string{EnvAPITokenSalt, EnvTransferTokenSalt, EnvEncryptionKey,
		EnvFlagNPS, EnvFlagPromoteEE, EnvAdminCookieKeys, EnvAppKeys} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv(EnvAdminJWTSecret, "env-secret")

	dot, err := ReadDotenv(path)
	require.NoError(t, err)
	snap, err := NewSnapshot()
	require.NoError(t, err)

	rec, err := Assemble(Layered{snap, dot})
	require.NoError(t, err)
	assert.Equal(t, "env-secret", rec.Auth.Secret)
	assert.Equal(t, "s2", rec.APIToken.Salt)
	assert.Equal(t, []string{"k1", "k2"}, rec.Cookies.Keys)
}
