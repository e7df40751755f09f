package domain

import "fmt"

// Grade is the closed three-value scale used for magnitudes, importance and
// consistency throughout the analysis payload.
type Grade string

const (
	GradeHigh   Grade = "high"
	GradeMedium Grade = "medium"
	GradeLow    Grade = "low"
)

// Validate rejects values outside the closed enumeration.
func (g Grade) Validate() error {
	switch g {
	case GradeHigh, GradeMedium, GradeLow:
		return nil
	}
	return fmt.Errorf("invalid grade %q", string(g))
}

// PolicyRegime classifies the current policy regime from communication analysis.
type PolicyRegime struct {
	Current          string   `json:"current"`
	Conviction       string   `json:"conviction"`
	ExpectedDuration string   `json:"expected_duration"`
	Triggers         []string `json:"triggers"`
}

// MandatePriorities assesses the relative weight of the dual mandate.
type MandatePriorities struct {
	InflationFocus     string `json:"inflation_focus"`
	EmploymentFocus    string `json:"employment_focus"`
	FinancialStability string `json:"financial_stability"`
	DualMandateBalance string `json:"dual_mandate_balance"`
}

// FedAssessment carries overall guidance derived from the cycle.
type FedAssessment struct {
	MandatePriorities           MandatePriorities `json:"mandate_priorities"`
	PolicyGuidance              []string          `json:"policy_guidance"`
	AsymmetricOpportunities     []string          `json:"asymmetric_opportunities"`
	InstitutionalConsiderations string            `json:"institutional_considerations"`
}

// MonitoringPriority is one data point the committee is watching.
type MonitoringPriority struct {
	DataPoint        string `json:"data_point"`
	NextRelease      string `json:"next_release"`
	Importance       Grade  `json:"importance"`
	PotentialImpact  string `json:"potential_impact"`
	PolicyThresholds string `json:"policy_thresholds"`
}

// ConfidenceAssessment qualifies how much to trust the synthesis.
type ConfidenceAssessment struct {
	BaseCase         string   `json:"base_case"`
	PolicyAnalysis   string   `json:"policy_analysis"`
	KeyUncertainties []string `json:"key_uncertainties"`
	DataLimitations  []string `json:"data_limitations"`
}

// MeetingCycleSynthesis is the top-level synthesis block.
type MeetingCycleSynthesis struct {
	PolicyRegime         PolicyRegime         `json:"policy_regime"`
	FedAssessment        FedAssessment        `json:"fed_assessment"`
	MonitoringPriorities []MonitoringPriority `json:"monitoring_priorities"`
	ConfidenceAssessment ConfidenceAssessment `json:"confidence_assessment"`
}

// BondsDirection captures bond-market impact from the policy path.
type BondsDirection struct {
	Yields             string   `json:"yields"`
	Curve              string   `json:"curve"`
	Magnitude          Grade    `json:"magnitude"`
	Focus              []string `json:"focus"`
	PolicyTransmission string   `json:"policy_transmission"`
}

// EquitiesDirection captures equity-market impact from the policy path.
type EquitiesDirection struct {
	Direction          string   `json:"direction"`
	Magnitude          Grade    `json:"magnitude"`
	SensitivityFocus   []string `json:"sensitivity_focus"`
	ResistantSectors   []string `json:"resistant_sectors"`
	PolicyTransmission string   `json:"policy_transmission"`
}

// CurrenciesDirection captures FX impact from policy divergence.
type CurrenciesDirection struct {
	USD                string `json:"usd"`
	CarryTrades        string `json:"carry_trades"`
	Magnitude          Grade  `json:"magnitude"`
	PolicyTransmission string `json:"policy_transmission"`
}

// CommoditiesDirection captures commodity impact via real rates and the dollar.
type CommoditiesDirection struct {
	Direction          string   `json:"direction"`
	Magnitude          Grade    `json:"magnitude"`
	Focus              []string `json:"focus"`
	PolicyTransmission string   `json:"policy_transmission"`
}

// AssetDirections groups per-asset-class directional impacts.
type AssetDirections struct {
	Bonds       BondsDirection       `json:"bonds"`
	Equities    EquitiesDirection    `json:"equities"`
	Currencies  CurrenciesDirection  `json:"currencies"`
	Commodities CommoditiesDirection `json:"commodities"`
}

// BaseCase is the most likely policy path and its market consequences.
type BaseCase struct {
	Scenario        string          `json:"scenario"`
	Probability     string          `json:"probability"`
	AssetDirections AssetDirections `json:"asset_directions"`
}

// AlternativeScenario is a lower-probability policy path.
type AlternativeScenario struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Probability       string          `json:"probability"`
	MarketImpactScore string          `json:"market_impact_score"`
	AssetDirections   AssetDirections `json:"asset_directions"`
}

// CrossAssetImpact holds the base case plus alternatives.
type CrossAssetImpact struct {
	BaseCase             BaseCase              `json:"base_case"`
	AlternativeScenarios []AlternativeScenario `json:"alternative_scenarios"`
}

// KeySignal is one discrete communication signal supporting a cluster.
type KeySignal struct {
	Communication  string   `json:"communication"`
	SignalDate     string   `json:"signal_date"`
	MarketScore    string   `json:"market_score"`
	DirectionShift string   `json:"direction_shift"`
	Impact         string   `json:"impact"`
	Sources        []string `json:"sources"`
}

// PolicyIndicators summarize the policy-stance cluster's underlying gauges.
type PolicyIndicators struct {
	RateGuidance           string `json:"rate_guidance"`
	MandateEmphasis        string `json:"mandate_emphasis"`
	ToolDeployment         string `json:"tool_deployment"`
	CredibilityMaintenance string `json:"credibility_maintenance"`
}

// PolicyStanceCluster groups policy-direction communications.
type PolicyStanceCluster struct {
	Headline         string           `json:"headline"`
	Tone             string           `json:"tone"`
	Consistency      Grade            `json:"consistency"`
	AvgMarketScore   string           `json:"avg_market_score"`
	MarketImpact     string           `json:"market_impact"`
	KeySignals       []KeySignal      `json:"key_signals"`
	PolicyIndicators PolicyIndicators `json:"policy_indicators"`
}

// AssessmentIndicators summarize the economic-outlook cluster's gauges.
type AssessmentIndicators struct {
	GrowthOutlook         string `json:"growth_outlook"`
	InflationExpectations string `json:"inflation_expectations"`
	FinancialConditions   string `json:"financial_conditions"`
	GlobalRisks           string `json:"global_risks"`
}

// EconomicAssessmentCluster groups economic-outlook communications.
type EconomicAssessmentCluster struct {
	Headline             string               `json:"headline"`
	Tone                 string               `json:"tone"`
	Consistency          Grade                `json:"consistency"`
	AvgMarketScore       string               `json:"avg_market_score"`
	MarketImpact         string               `json:"market_impact"`
	KeySignals           []KeySignal          `json:"key_signals"`
	AssessmentIndicators AssessmentIndicators `json:"assessment_indicators"`
}

// TransmissionIndicators summarize how policy reaches markets.
type TransmissionIndicators struct {
	RateTransmission   string `json:"rate_transmission"`
	CreditChannels     string `json:"credit_channels"`
	WealthEffects      string `json:"wealth_effects"`
	ExpectationsAnchor string `json:"expectations_anchor"`
}

// MarketTransmissionCluster groups transmission-mechanism communications.
type MarketTransmissionCluster struct {
	Headline               string                 `json:"headline"`
	Tone                   string                 `json:"tone"`
	Consistency            Grade                  `json:"consistency"`
	AvgMarketScore         string                 `json:"avg_market_score"`
	MarketImpact           string                 `json:"market_impact"`
	KeySignals             []KeySignal            `json:"key_signals"`
	TransmissionIndicators TransmissionIndicators `json:"transmission_indicators"`
}

// CommunicationClusters bundles the three categorized clusters.
type CommunicationClusters struct {
	PolicyStance       PolicyStanceCluster       `json:"policy_stance"`
	EconomicAssessment EconomicAssessmentCluster `json:"economic_assessment"`
	MarketTransmission MarketTransmissionCluster `json:"market_transmission"`
}

// CycleStage places the committee in its tightening/easing cycle.
type CycleStage struct {
	CurrentPhase       string `json:"current_phase"`
	MandateBalance     string `json:"mandate_balance"`
	GlobalCoordination string `json:"global_coordination"`
	CredibilityStatus  string `json:"credibility_status"`
}

// PolicyDynamics describes internal and external pressures on policy.
type PolicyDynamics struct {
	InternalConsensus    string `json:"internal_consensus"`
	ExternalPressure     string `json:"external_pressure"`
	ToolEffectiveness    string `json:"tool_effectiveness"`
	CommunicationClarity string `json:"communication_clarity"`
}

// EscalationIndicators track conditions that would force a policy shift.
type EscalationIndicators struct {
	ToolProgression   string `json:"tool_progression"`
	MandatePressure   string `json:"mandate_pressure"`
	ThresholdLevels   string `json:"threshold_levels"`
	StabilizingFactor string `json:"stabilizing_factors"`
}

// FedPositioning is the positioning-assessment block.
type FedPositioning struct {
	CycleStage           CycleStage           `json:"cycle_stage"`
	PolicyDynamics       PolicyDynamics       `json:"policy_dynamics"`
	EscalationIndicators EscalationIndicators `json:"escalation_indicators"`
}

// EvolutionIndicator tracks the direction of one communication dimension.
type EvolutionIndicator struct {
	Direction  string   `json:"direction"`
	Conviction string   `json:"conviction"`
	Indicators []string `json:"indicators"`
}

// CommunicationEvolution tracks how communication changes across cycles.
type CommunicationEvolution struct {
	GuidanceClarity EvolutionIndicator `json:"guidance_clarity"`
	MandateEmphasis EvolutionIndicator `json:"mandate_emphasis"`
	ToolReadiness   EvolutionIndicator `json:"tool_readiness"`
	GlobalAwareness EvolutionIndicator `json:"global_awareness"`
}

// CredibilityIndicators measure follow-through on guidance.
type CredibilityIndicators struct {
	GuidanceSequence    string `json:"guidance_sequence"`
	MarketAlignment     string `json:"market_alignment"`
	DataResponsiveness  string `json:"data_responsiveness"`
	ExpectedPersistence string `json:"expected_persistence"`
}

// ConsistencyAssessment is the consistency/credibility block.
type ConsistencyAssessment struct {
	Specification          string                 `json:"specification"`
	CommunicationEvolution CommunicationEvolution `json:"communication_evolution"`
	CredibilityIndicators  CredibilityIndicators  `json:"credibility_indicators"`
}

// CommunicationAnalysis wraps the consistency assessment.
type CommunicationAnalysis struct {
	ConsistencyAssessment ConsistencyAssessment `json:"consistency_assessment"`
}

// AnalogousCycle is one historical parallel to the current cycle.
type AnalogousCycle struct {
	Period       string   `json:"period"`
	Similarities []string `json:"similarities"`
	Differences  []string `json:"differences"`
	Outcomes     []string `json:"outcomes"`
	Lessons      []string `json:"lessons"`
	Confidence   string   `json:"confidence"`
}

// PatternRecognition summarizes behavior patterns from past cycles.
type PatternRecognition struct {
	FedBehavior            string `json:"fed_behavior"`
	CycleSequence          string `json:"cycle_sequence"`
	MarketResponse         string `json:"market_response"`
	TransmissionMechanisms string `json:"transmission_mechanisms"`
}

// HistoricalContext is the historical-analogy block.
type HistoricalContext struct {
	AnalogousCycles    []AnalogousCycle   `json:"analogous_cycles"`
	PatternRecognition PatternRecognition `json:"pattern_recognition"`
}

// Timeframe anchors the analysis to the meeting calendar.
type Timeframe struct {
	MeetingCycle    string   `json:"meeting_cycle"`
	NextMeeting     string   `json:"next_meeting"`
	KeyDataReleases []string `json:"key_data_releases"`
	UpdateFrequency string   `json:"update_frequency"`
}

// Methodology documents how the analysis was produced.
type Methodology struct {
	ImpactScoring          string `json:"impact_scoring"`
	CommunicationAnalysis  string `json:"communication_analysis"`
	CycleMapping           string `json:"cycle_mapping"`
	CrossAssetTransmission string `json:"cross_asset_transmission"`
	HistoricalValidation   string `json:"historical_validation"`
}

// DataLimitations is the explicit limitations block.
type DataLimitations struct {
	PublicInformation   string `json:"public_information"`
	RealTimeEvents      string `json:"real_time_events"`
	FedIntentions       string `json:"fed_intentions"`
	PrecisionDisclaimer string `json:"precision_disclaimer"`
}

// AnalysisFramework is the methodology/limitations block.
type AnalysisFramework struct {
	Timeframe       Timeframe       `json:"timeframe"`
	Methodology     Methodology     `json:"methodology"`
	DataLimitations DataLimitations `json:"data_limitations"`
}

func (d AssetDirections) validate() error {
	if err := d.Bonds.Magnitude.Validate(); err != nil {
		return fmt.Errorf("bonds: %w", err)
	}
	if err := d.Equities.Magnitude.Validate(); err != nil {
		return fmt.Errorf("equities: %w", err)
	}
	if err := d.Currencies.Magnitude.Validate(); err != nil {
		return fmt.Errorf("currencies: %w", err)
	}
	if err := d.Commodities.Magnitude.Validate(); err != nil {
		return fmt.Errorf("commodities: %w", err)
	}
	return nil
}

// AnalysisResult is the complete structured output of one analysis pass.
// The persistence layer round-trips this shape losslessly through the verdict
// content column; the workflow itself never interprets its fields.
type AnalysisResult struct {
	MeetingCycleSynthesis MeetingCycleSynthesis `json:"meeting_cycle_synthesis"`
	CrossAssetImpact      CrossAssetImpact      `json:"cross_asset_impact"`
	CommunicationClusters CommunicationClusters `json:"communication_clusters"`
	FedPositioning        FedPositioning        `json:"fed_positioning"`
	CommunicationAnalysis CommunicationAnalysis `json:"fed_communication_analysis"`
	HistoricalContext     HistoricalContext     `json:"historical_context"`
	AnalysisFramework     AnalysisFramework     `json:"analysis_framework"`
}

// Validate checks every closed-enumeration field in the payload. A payload
// that fails here is treated as a content-extraction error by callers.
func (r AnalysisResult) Validate() error {
	for i, p := range r.MeetingCycleSynthesis.MonitoringPriorities {
		if err := p.Importance.Validate(); err != nil {
			return fmt.Errorf("monitoring_priorities[%d]: %w", i, err)
		}
	}
	if err := r.CrossAssetImpact.BaseCase.AssetDirections.validate(); err != nil {
		return fmt.Errorf("base_case: %w", err)
	}
	for i, s := range r.CrossAssetImpact.AlternativeScenarios {
		if err := s.AssetDirections.validate(); err != nil {
			return fmt.Errorf("alternative_scenarios[%d]: %w", i, err)
		}
	}
	clusters := r.CommunicationClusters
	if err := clusters.PolicyStance.Consistency.Validate(); err != nil {
		return fmt.Errorf("policy_stance: %w", err)
	}
	if err := clusters.EconomicAssessment.Consistency.Validate(); err != nil {
		return fmt.Errorf("economic_assessment: %w", err)
	}
	if err := clusters.MarketTransmission.Consistency.Validate(); err != nil {
		return fmt.Errorf("market_transmission: %w", err)
	}
	return nil
}
