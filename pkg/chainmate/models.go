package chainmate

// TokenBalance is one wallet holding as returned by the token balance
// provider. Field tags match the upstream wire format; amounts are
// string-encoded integers to avoid precision loss.
type TokenBalance struct {
	BlockNum          int64   `json:"block_num"`
	LastBalanceUpdate string  `json:"last_balance_update"`
	Contract          string  `json:"contract"`
	Amount            string  `json:"amount"`
	Value             float64 `json:"value"`
	Name              string  `json:"name"`
	Symbol            string  `json:"symbol"`
	Decimals          int     `json:"decimals"`
	NetworkID         string  `json:"network_id"`
}

// PortfolioHealth labels how evenly value is spread across holdings.
type PortfolioHealth string

const (
	HealthConcentrated PortfolioHealth = "concentrated"
	HealthModerate     PortfolioHealth = "moderate"
	HealthDiversified  PortfolioHealth = "diversified"
)

// TopHolding describes the single largest position of a portfolio.
type TopHolding struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	ValueUSD   float64 `json:"valueUSD"`
	Percentage string  `json:"percentage"`
}

// SectorValue is the aggregated value of one sector and its share of the
// portfolio total, rendered with one decimal place and a trailing percent.
type SectorValue struct {
	ValueUSD   float64 `json:"valueUSD"`
	Percentage string  `json:"percentage"`
}

// PortfolioAnalysis is the analysis engine's sole output. It is constructed
// once per request and never mutated afterwards.
type PortfolioAnalysis struct {
	WalletAddress   string                 `json:"walletAddress"`
	TotalValueUSD   float64                `json:"totalValueUSD"`
	TokenCount      int                    `json:"tokenCount"`
	TopHolding      TopHolding             `json:"topHolding"`
	DiversityScore  int                    `json:"diversityScore"`
	PortfolioHealth PortfolioHealth        `json:"portfolioHealth"`
	SectorBreakdown map[string]SectorValue `json:"sectorBreakdown"`
	LastActivity    string                 `json:"lastActivity"`
	Tokens          []TokenBalance         `json:"tokens"`
	AIInsights      []string               `json:"aiInsights"`
}

// IntentTag classifies one user utterance.
type IntentTag string

const (
	IntentPortfolioAnalysis IntentTag = "portfolio_analysis"
	IntentWhaleAnalysis     IntentTag = "whale_analysis"
	IntentUnknown           IntentTag = "unknown"
)

// Intent is the transient classification of one query. The address is
// attached whenever one appears in the text, regardless of the tag.
type Intent struct {
	Tag     IntentTag
	Address string
}

// ToolCallRecord is the observability record of one tool invocation.
type ToolCallRecord struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// MessageData carries structured side-channel data on a chat message.
type MessageData struct {
	ToolCalls []ToolCallRecord `json:"toolCalls"`
}

// ChatMessage is one assistant reply. Data is present only when at least
// one tool was invoked while producing the reply.
type ChatMessage struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Timestamp string       `json:"timestamp"`
	Data      *MessageData `json:"data,omitempty"`
}
