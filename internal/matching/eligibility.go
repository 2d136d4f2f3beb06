package matching

// Business size labels used by program rules.
const (
	SizeSmall  = "小規模"
	SizeMedium = "中規模"
	SizeLarge  = "大規模"
	SizeSME    = "中小企業"
)

const (
	smallMaxEmployees = 20
	smeMaxEmployees   = 300
)

const (
	reasonSizeOutOfScope     = "事業規模が対象外です"
	reasonIndustryOutOfScope = "業種が対象外です"
)

// SizeClass classifies a company by employee count. Thresholds are
// inclusive: exactly 20 employees is 小規模, exactly 300 is 中規模.
func SizeClass(employeeCount int) string {
	switch {
	case employeeCount <= smallMaxEmployees:
		return SizeSmall
	case employeeCount <= smeMaxEmployees:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// CheckEligibility gates the company against size, industry and mandatory
// requirements. The evaluator is consulted only for mandatory requirements;
// a nil evaluator or an evaluator error counts the requirement as not met.
func CheckEligibility(profile CompanyProfile, rules ProgramRules, evaluator RequirementEvaluator) Eligibility {
	reasons := []string{}
	missing := []string{}

	if len(rules.TargetSizes) > 0 && !sizeAllowed(profile.EmployeeCount, rules.TargetSizes) {
		missing = append(missing, reasonSizeOutOfScope)
	}

	if len(rules.TargetIndustries) > 0 && !containsString(rules.TargetIndustries, profile.Industry) {
		missing = append(missing, reasonIndustryOutOfScope)
	}

	for _, req := range rules.Requirements {
		if !req.Mandatory {
			continue
		}
		met := false
		if evaluator != nil {
			ok, err := evaluator.Evaluate(req, profile)
			met = ok && err == nil
		}
		if met {
			reasons = append(reasons, req.Text)
		} else {
			missing = append(missing, req.Text)
		}
	}

	return Eligibility{
		IsEligible:          len(missing) == 0,
		Reasons:             reasons,
		MissingRequirements: missing,
	}
}

// sizeAllowed reports whether any allowed size label admits the company.
// 中小企業 is an umbrella label covering everything up to 300 employees.
func sizeAllowed(employeeCount int, allowed []string) bool {
	class := SizeClass(employeeCount)
	for _, label := range allowed {
		if label == class {
			return true
		}
		if label == SizeSME && employeeCount <= smeMaxEmployees {
			return true
		}
	}
	return false
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
