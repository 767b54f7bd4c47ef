package channeltype

import "sync"

// DefaultEntries returns the gateway's built-in channel type table in
// declaration order. Replicate carries its own id 46; it used to be keyed
// under 45 next to xAI, which hid one of the two providers.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: 1, Label: "OpenAI", Color: ColorSuccess},
		{ID: 14, Label: "Anthropic Claude", Color: ColorPrimary},
		{ID: 33, Label: "AWS", Color: ColorPrimary},
		{ID: 37, Label: "Cloudflare", Color: ColorSuccess},
		{ID: 3, Label: "Azure OpenAI", Color: ColorSuccess},
		{ID: 11, Label: "Google PaLM2", Color: ColorWarning},
		{ID: 24, Label: "Google Gemini", Color: ColorWarning},
		{ID: 28, Label: "Mistral AI", Color: ColorWarning},
		{ID: 40, Label: "字节火山引擎", Color: ColorPrimary},
		{ID: 15, Label: "Baidu Wenxin Qianfan", Color: ColorPrimary},
		{ID: 17, Label: "Alibaba Tongyi Qianwen", Color: ColorPrimary},
		{ID: 18, Label: "iFlytek Spark认知", Color: ColorPrimary},
		{ID: 16, Label: "Zhipu AI ChatGLM", Color: ColorPrimary},
		{ID: 19, Label: "360 360 AI", Color: ColorPrimary},
		{ID: 25, Label: "Moonshot AI", Color: ColorPrimary},
		{ID: 23, Label: "Tencent Hunyuan", Color: ColorPrimary},
		{ID: 26, Label: "Baichuan大模型", Color: ColorPrimary},
		{ID: 27, Label: "MiniMax", Color: ColorPrimary},
		{ID: 29, Label: "Groq", Color: ColorPrimary},
		{ID: 30, Label: "Ollama", Color: ColorPrimary},
		{ID: 31, Label: "Yi AI", Color: ColorPrimary},
		{ID: 32, Label: "StepFun", Color: ColorPrimary},
		{ID: 34, Label: "Coze", Color: ColorPrimary},
		{ID: 35, Label: "Cohere", Color: ColorPrimary},
		{ID: 36, Label: "DeepSeek", Color: ColorPrimary},
		{ID: 38, Label: "DeepL", Color: ColorPrimary},
		{ID: 39, Label: "together.ai", Color: ColorPrimary},
		{ID: 42, Label: "VertexAI", Color: ColorPrimary},
		{ID: 43, Label: "Proxy", Color: ColorPrimary},
		{ID: 44, Label: "SiliconFlow", Color: ColorPrimary},
		{ID: 45, Label: "xAI", Color: ColorPrimary},
		{ID: 46, Label: "Replicate", Color: ColorPrimary},
		{ID: 41, Label: "Novita", Color: ColorPurple},
		{ID: 8, Label: "Custom Channel", Color: ColorError},
		{ID: 22, Label: "Knowledge Base:FastGPT", Color: ColorSuccess},
		{ID: 21, Label: "Knowledge Base:AI Proxy", Color: ColorSuccess},
		{ID: 20, Label: "OpenRouter", Color: ColorSuccess},
		{ID: 2, Label: "Proxy:API2D", Color: ColorSuccess},
		{ID: 5, Label: "Proxy:OpenAI-SB", Color: ColorSuccess},
		{ID: 7, Label: "Proxy:OhMyGPT", Color: ColorSuccess},
		{ID: 10, Label: "Proxy:AI Proxy", Color: ColorSuccess},
		{ID: 4, Label: "Proxy:CloseAI", Color: ColorSuccess},
		{ID: 6, Label: "Proxy:OpenAI Max", Color: ColorSuccess},
		{ID: 9, Label: "Proxy:AI.LS", Color: ColorSuccess},
		{ID: 12, Label: "Proxy:API2GPT", Color: ColorSuccess},
		{ID: 13, Label: "Proxy:AIGC2D", Color: ColorSuccess},
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from DefaultEntries.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNew(DefaultEntries())
	})
	return defaultRegistry
}
