package model

// PageMode classifies how a page was produced by the upstream probe.
type PageMode string

const (
	ModeNative PageMode = "native"
	ModeScan   PageMode = "scan"
	ModeMixed  PageMode = "mixed"
)

// SourceType identifies which extractor produced a block or table.
type SourceType string

const (
	SourceNative  SourceType = "native"
	SourceOCR     SourceType = "ocr"
	SourceVector  SourceType = "vector"
	SourceMinerU  SourceType = "mineru"
	SourceDolphin SourceType = "dolphin"
)

// BlockType is the layout-level type of a block.
type BlockType string

const (
	BlockText          BlockType = "text"
	BlockTitle         BlockType = "title"
	BlockSectionHeader BlockType = "section_header"
	BlockListItem      BlockType = "list_item"
	BlockCaption       BlockType = "caption"
	BlockFootnote      BlockType = "footnote"
	BlockFormula       BlockType = "formula"
	BlockPicture       BlockType = "picture"

	// Music-sheet block types, produced by the OMR subsystem. The
	// financial pipeline passes them through untouched.
	BlockMusicStaff      BlockType = "music_staff"
	BlockMusicDynamic    BlockType = "music_dynamic"
	BlockMusicExpression BlockType = "music_expression"
	BlockMusicTempo      BlockType = "music_tempo"
	BlockMusicMeasureNum BlockType = "music_measure_num"
)

// ContentType is the coarse document content classification set upstream.
type ContentType string

const (
	ContentFinancial  ContentType = "financial"
	ContentMusicSheet ContentType = "music_sheet"
	ContentGeneral    ContentType = "general"
	ContentTechnical  ContentType = "technical"
	ContentLegal      ContentType = "legal"
)

// FinancialType is the financial statement category assigned to a page
// or item by the classifier.
type FinancialType string

const (
	FinBalanceSheet             FinancialType = "balance_sheet"
	FinIncomeStatement          FinancialType = "income_statement"
	FinCashFlowStatement        FinancialType = "cash_flow_statement"
	FinChangesInEquity          FinancialType = "changes_in_equity"
	FinNotes                    FinancialType = "notes"
	FinAccountingPolicies       FinancialType = "accounting_policies"
	FinCommitmentsContingencies FinancialType = "commitments_contingencies"
	FinRelatedParty             FinancialType = "related_party"
	FinAuditorsReport           FinancialType = "auditors_report"
	FinManagementReport         FinancialType = "management_report"
	FinBudgetComparison         FinancialType = "budget_comparison"
	FinPerformanceIndicators    FinancialType = "performance_indicators"
	FinAppendix                 FinancialType = "appendix"
)

// Severity grades a QA finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Semantic section tags assigned to pages by the classifier. These are
// free-form strings in the serialized document; the constants exist so
// the classifier and the checkers agree on spelling.
const (
	SectionCover            = "cover"
	SectionTOC              = "toc"
	SectionBalanceSheet     = "balance_sheet"
	SectionIncomeStatement  = "income_statement"
	SectionCashFlow         = "cash_flow_statement"
	SectionNotes            = "notes"
	SectionAccountingPolicy = "accounting_policies"
	SectionManagementReport = "management_report"
	SectionAppendix         = "appendix"
)
