package domain

import "strings"

// KeyTitle is the mapping key holding the document title block.
const KeyTitle = "title"

// Section describes one body section of a generated specification.
type Section struct {
	// Key is the mapping key for this section.
	Key string

	// Heading is the numbered heading rendered above the section text.
	Heading string
}

// Sections is the closed, ordered set of body sections in every generated
// specification. The order here is the canonical rendering order; keys are
// never added or removed at runtime.
var Sections = []Section{
	{Key: "summary", Heading: "1. Summary"},
	{Key: "functional_requirements", Heading: "2.1 Functional Requirements"},
	{Key: "non_functional_requirements", Heading: "2.2 Non-Functional Requirements"},
	{Key: "constraints_assumptions", Heading: "2.3 Constraints and Assumptions"},
	{Key: "architecture_overview", Heading: "3.1 Architecture Overview"},
	{Key: "system_components", Heading: "3.2 System Components"},
	{Key: "development_environment", Heading: "4.1 Development Environment"},
	{Key: "backend_technology", Heading: "4.2 Backend Technology"},
	{Key: "frontend_technology", Heading: "4.3 Frontend Technology"},
	{Key: "infrastructure_deployment", Heading: "4.4 Infrastructure and Deployment"},
	{Key: "entity_relationship_diagram", Heading: "5.1 Entity Relationship Diagram"},
	{Key: "database_schema", Heading: "5.2 Database Schema"},
	{Key: "data_flow", Heading: "5.3 Data Flow"},
	{Key: "api_overview", Heading: "6.1 API Overview"},
	{Key: "endpoint_details", Heading: "6.2 Endpoint Details"},
	{Key: "backend_components", Heading: "7.1 Backend Components"},
	{Key: "frontend_components", Heading: "7.2 Frontend Components"},
	{Key: "core_algorithms_logic", Heading: "7.3 Core Algorithms and Logic"},
	{Key: "security_threat_analysis", Heading: "8.1 Security Threat Analysis"},
	{Key: "security_controls", Heading: "8.2 Security Controls"},
	{Key: "test_approach", Heading: "9.1 Test Approach"},
	{Key: "test_cases", Heading: "9.2 Test Cases"},
	{Key: "development_phases", Heading: "10.1 Development Phases"},
	{Key: "development_standards", Heading: "11.1 Development Standards"},
	{Key: "documentation_requirements", Heading: "11.2 Documentation Requirements"},
	{Key: "glossary", Heading: "12.1 Glossary"},
	{Key: "reference_documents", Heading: "12.2 Reference Documents"},
	{Key: "requirements_implementation_verification", Heading: "13.1 Requirements Implementation Verification"},
	{Key: "implementation_status_conclusion", Heading: "13.2 Implementation Status Conclusion"},
}

// SectionMapping maps section keys to their text content.
// A fully resolved mapping contains every key in SectionKeys() with
// non-empty text.
type SectionMapping map[string]string

// SectionKeys returns all mapping keys (title + body sections) in
// canonical order.
func SectionKeys() []string {
	keys := make([]string, 0, len(Sections)+1)
	keys = append(keys, KeyTitle)
	for _, s := range Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

// IsSectionKey reports whether key belongs to the canonical key set.
func IsSectionKey(key string) bool {
	if key == KeyTitle {
		return true
	}
	for _, s := range Sections {
		if s.Key == key {
			return true
		}
	}
	return false
}

// defaultSections holds the placeholder text for each section key.
var defaultSections = SectionMapping{
	KeyTitle:                      "Software Implementation Specification",
	"summary":                     "This document describes the main features of the software and how they are implemented.",
	"functional_requirements":     "- Key feature 1\n- Key feature 2\n- Key feature 3",
	"non_functional_requirements": "- Performance requirements\n- Security requirements\n- Usability requirements",
	"constraints_assumptions":     "- Development environment constraints\n- Key assumptions",
	"architecture_overview":       "Describes the system architecture and the relationships between its main components.",
	"system_components":           "- Component 1: role and responsibilities\n- Component 2: role and responsibilities",
	"development_environment":     "- Languages and frameworks\n- Development tools",
	"backend_technology":          "Describes the main technologies and frameworks used in the backend.",
	"frontend_technology":         "Describes the main technologies and frameworks used in the frontend.",
	"infrastructure_deployment":   "Describes the infrastructure layout and deployment process.",
	"entity_relationship_diagram": "Describes the relationships between the main entities.",
	"database_schema":             "Describes the database schema and table structure.",
	"data_flow":                   "Describes how data flows through the system.",
	"api_overview":                "Describes API design principles and authentication mechanisms.",
	"endpoint_details":            "Describes the main API endpoints and methods.",
	"backend_components":          "Describes the main backend modules and their design.",
	"frontend_components":         "Describes the frontend component hierarchy and state management.",
	"core_algorithms_logic":       "Describes the core algorithms and business logic.",
	"security_threat_analysis":    "Analyses the main security threats and risks.",
	"security_controls":           "Describes authentication and authorisation mechanisms and data protection strategy.",
	"test_approach":               "Describes test levels and types, test environments, and automation strategy.",
	"test_cases":                  "Describes the main test scenarios and data requirements.",
	"development_phases":          "Describes the main development phases and milestones.",
	"development_standards":       "Describes design principles and patterns, naming conventions, and structuring methodology.",
	"documentation_requirements":  "Describes code comment requirements and technical writing guidelines.",
	"glossary":                    "Defines the main technical and business terms.",
	"reference_documents":         "Lists related documents and resources.",
	"requirements_implementation_verification": "Verification of all functional requirements, verification of non-functional requirements, and a list of open issues and limitations.",
	"implementation_status_conclusion":         "Implementation status: [COMPLETE / CONTINUE]\n\nList of incomplete items (if any)\n\nRecommended next steps (if any)",
}

// Defaults returns a fresh copy of the canonical default mapping.
func Defaults() SectionMapping {
	m := make(SectionMapping, len(defaultSections))
	for k, v := range defaultSections {
		m[k] = v
	}
	return m
}

// Merge fills every key that is missing or blank in partial from the
// defaults, returning a fully resolved mapping. The input is not modified.
func Merge(partial SectionMapping) SectionMapping {
	merged := Defaults()
	for k, v := range partial {
		if !IsSectionKey(k) {
			continue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		merged[k] = v
	}
	return merged
}
