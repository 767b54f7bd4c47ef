package viewschema

// tables holds one declarative column list per view. Order is display order.
var tables = map[EntityKind][]Column{
	EntityChannel: {
		{Key: "id", Label: "ID", Kind: KindText, Field: "id"},
		{Key: "name", Label: "Name", Kind: KindText, Field: "name"},
		{Key: "group", Label: "Group", Kind: KindText, Field: "group"},
		{Key: "type", Label: "Type", Kind: KindChannelType, Field: "type"},
		{Key: "status", Label: "Status", Kind: KindStatus, Field: "status"},
		{Key: "response_time", Label: "Response Time", Kind: KindText, Field: "response_time"},
		{Key: "used_quota", Label: "Used", Kind: KindQuota, Field: "used_quota"},
		{Key: "balance", Label: "Balance", Kind: KindText, Field: "balance"},
		{Key: "priority", Label: "Priority", Kind: KindText, Field: "priority"},
		{Key: "actions", Label: "Actions", Kind: KindActions},
	},
	EntityLog: {
		{Key: "created_at", Label: "Time", Kind: KindTime, Field: "created_at"},
		{Key: "channel", Label: "Channels", Visibility: AdminOnly, Kind: KindText, Field: "channel"},
		{Key: "username", Label: "Users", Visibility: AdminOnly, Kind: KindText, Field: "username"},
		{Key: "token_name", Label: "Tokens", Kind: KindText, Field: "token_name"},
		{Key: "type", Label: "Type", Kind: KindText, Field: "type"},
		{Key: "model_name", Label: "Model", Kind: KindText, Field: "model_name"},
		{Key: "prompt_tokens", Label: "Prompt", Kind: KindText, Field: "prompt_tokens"},
		{Key: "completion_tokens", Label: "Completion", Kind: KindText, Field: "completion_tokens"},
		{Key: "quota", Label: "Quota", Kind: KindQuota, Field: "quota"},
		{Key: "content", Label: "Details", Kind: KindText, Field: "content"},
	},
	EntityRedemption: {
		{Key: "id", Label: "ID", Kind: KindText, Field: "id"},
		{Key: "name", Label: "Name", Kind: KindText, Field: "name"},
		{Key: "status", Label: "Status", Kind: KindStatus, Field: "status"},
		{Key: "quota", Label: "Quota", Kind: KindQuota, Field: "quota"},
		{Key: "created_time", Label: "Created At", Kind: KindTime, Field: "created_time"},
		{Key: "redeemed_time", Label: "Redeemed At", Kind: KindTime, Field: "redeemed_time"},
		{Key: "actions", Label: "Actions", Kind: KindActions},
	},
	EntityToken: {
		{Key: "name", Label: "Name", Kind: KindText, Field: "name"},
		{Key: "status", Label: "Status", Kind: KindStatus, Field: "status"},
		{Key: "used_quota", Label: "Used Quota", Kind: KindQuota, Field: "used_quota"},
		{Key: "remain_quota", Label: "Remaining Quota", Kind: KindQuota, Field: "remain_quota"},
		{Key: "created_time", Label: "Created At", Kind: KindTime, Field: "created_time"},
		{Key: "expired_time", Label: "Expires At", Kind: KindTime, Field: "expired_time"},
		{Key: "actions", Label: "Actions", Kind: KindActions},
	},
	EntityUser: {
		{Key: "id", Label: "ID", Kind: KindText, Field: "id"},
		{Key: "username", Label: "Username", Kind: KindText, Field: "username"},
		{Key: "group", Label: "Group", Kind: KindText, Field: "group"},
		{Key: "statistics", Label: "Statistics", Kind: KindText, Field: "{quota,used_quota,request_count}"},
		{Key: "role", Label: "Role", Kind: KindText, Field: "role"},
		{Key: "bindings", Label: "Bindings", Kind: KindText, Field: "{github_id,wechat_id,email}"},
		{Key: "status", Label: "Status", Kind: KindStatus, Field: "status"},
		{Key: "actions", Label: "Actions", Kind: KindActions},
	},
}
