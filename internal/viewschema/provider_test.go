package viewschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwconsole/internal/channeltype"
)

func testRegistry(t *testing.T) *channeltype.Registry {
	t.Helper()
	reg, err := channeltype.New([]channeltype.Entry{
		{ID: 1, Label: "OpenAI", Color: channeltype.ColorSuccess},
		{ID: 14, Label: "Anthropic Claude", Color: channeltype.ColorPrimary},
	})
	require.NoError(t, err)
	return reg
}

func labels(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

func TestColumnsFor_LogRoleGating(t *testing.T) {
	p := NewProvider(testRegistry(t))

	admin, err := p.ColumnsFor(EntityLog, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Time", "Channels", "Users", "Tokens", "Type", "Model", "Prompt", "Completion", "Quota", "Details",
	}, labels(admin))

	user, err := p.ColumnsFor(EntityLog, RoleStandardUser)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Time", "Tokens", "Type", "Model", "Prompt", "Completion", "Quota", "Details",
	}, labels(user))
	assert.NotContains(t, labels(user), "Channels")
	assert.NotContains(t, labels(user), "Users")
}

func TestColumnsFor_AllViews(t *testing.T) {
	p := NewProvider(testRegistry(t))

	expected := map[EntityKind][]string{
		EntityChannel:    {"ID", "Name", "Group", "Type", "Status", "Response Time", "Used", "Balance", "Priority", "Actions"},
		EntityRedemption: {"ID", "Name", "Status", "Quota", "Created At", "Redeemed At", "Actions"},
		EntityToken:      {"Name", "Status", "Used Quota", "Remaining Quota", "Created At", "Expires At", "Actions"},
		EntityUser:       {"ID", "Username", "Group", "Statistics", "Role", "Bindings", "Status", "Actions"},
	}

	for kind, want := range expected {
		for _, role := range []Role{RoleAdmin, RoleStandardUser} {
			t.Run(string(kind)+"/"+string(role), func(t *testing.T) {
				cols, err := p.ColumnsFor(kind, role)
				require.NoError(t, err)
				assert.Equal(t, want, labels(cols))
			})
		}
	}
}

func TestColumnsFor_ChannelTypeColumn(t *testing.T) {
	p := NewProvider(testRegistry(t))
	cols, err := p.ColumnsFor(EntityChannel, RoleAdmin)
	require.NoError(t, err)

	var typed []string
	for _, c := range cols {
		if c.Kind == KindChannelType {
			typed = append(typed, c.Key)
		}
	}
	assert.Equal(t, []string{"type"}, typed)
}

func TestColumnsFor_Deterministic(t *testing.T) {
	p := NewProvider(testRegistry(t))
	for _, kind := range EntityKinds() {
		first, err := p.ColumnsFor(kind, RoleAdmin)
		require.NoError(t, err)
		second, err := p.ColumnsFor(kind, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// callers own the returned slice
		first[0].Label = "changed"
		third, err := p.ColumnsFor(kind, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, second, third)
	}
}

func TestColumnsFor_Errors(t *testing.T) {
	p := NewProvider(testRegistry(t))

	_, err := p.ColumnsFor(EntityLog, Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = p.ColumnsFor(EntityLog, "")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = p.ColumnsFor(EntityKind("invoice"), RoleAdmin)
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestChannelTypeCell(t *testing.T) {
	p := NewProvider(testRegistry(t))

	cell := p.ChannelTypeCell(14)
	assert.Equal(t, Cell{Text: "Anthropic Claude", Color: "primary", Known: true}, cell)

	cell = p.ChannelTypeCell(99)
	assert.Equal(t, Cell{Text: UnknownChannelTypeLabel, Color: NeutralColor}, cell)
}

func TestHooks(t *testing.T) {
	var lookups []bool
	var views []EntityKind
	p := NewProviderWithHooks(testRegistry(t), Hooks{
		OnChannelTypeLookup: func(_ int, found bool) { lookups = append(lookups, found) },
		OnColumns:           func(kind EntityKind, _ Role) { views = append(views, kind) },
	})

	p.ChannelTypeCell(1)
	p.ChannelTypeCell(2)
	_, _ = p.ColumnsFor(EntityToken, RoleStandardUser)
	_, _ = p.ColumnsFor(EntityToken, Role("bogus"))
	_, _ = p.RenderRows(EntityToken, RoleAdmin, nil)

	assert.Equal(t, []bool{true, false}, lookups)
	assert.Equal(t, []EntityKind{EntityToken}, views)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: RoleAdmin},
		{in: "standard_user", want: RoleStandardUser},
		{in: "user", want: RoleStandardUser},
		{in: "root", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntityKind(t *testing.T) {
	for _, k := range EntityKinds() {
		got, err := ParseEntityKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseEntityKind("channels")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestVisibility(t *testing.T) {
	assert.True(t, Always.VisibleFor(RoleStandardUser))
	assert.True(t, AdminOnly.VisibleFor(RoleAdmin))
	assert.False(t, AdminOnly.VisibleFor(RoleStandardUser))
	assert.False(t, Visibility(7).VisibleFor(RoleAdmin))

	text, err := AdminOnly.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "admin_only", string(text))
}

func TestVisibility_Text(t *testing.T) {
	assert.Equal(t, "always", Always.String())
	assert.Equal(t, "admin_only", AdminOnly.String())
	assert.Equal(t, "unknown", Visibility(7).String())

	var v Visibility
	require.NoError(t, v.UnmarshalText([]byte("admin_only")))
	assert.Equal(t, AdminOnly, v)
	require.NoError(t, v.UnmarshalText([]byte("always")))
	assert.Equal(t, Always, v)
	assert.Error(t, v.UnmarshalText([]byte("hidden")))
}

func TestColumnJSONRoundTrip(t *testing.T) {
	p := NewProvider(testRegistry(t))
	cols, err := p.ColumnsFor(EntityLog, RoleAdmin)
	require.NoError(t, err)

	data, err := json.Marshal(cols)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"visibility":"admin_only"`)

	var decoded []Column
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cols, decoded)
}
