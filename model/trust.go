package model

// TrustPolicy defines how peer certificate chains are validated
type TrustPolicy uint

const (
	// validate against the platform roots and the CAs found in the keystore
	TrustPolicyDefault TrustPolicy = 0
	// accept every certificate chain without validation
	//
	// This allows man-in-the-middle attacks and must only be enabled explicitly.
	TrustPolicyTrustAll TrustPolicy = 1
)

// TrustAllInsecure returns the permissive trust policy.
func TrustAllInsecure() TrustPolicy {
	return TrustPolicyTrustAll
}

// map the trustAllCerts configuration flag to a policy
func TrustPolicyFromFlag(trustAll bool) TrustPolicy {
	if trustAll {
		return TrustAllInsecure()
	}
	return TrustPolicyDefault
}

func (t TrustPolicy) String() string {
	if t == TrustPolicyTrustAll {
		return "trust-all (insecure)"
	}
	return "default"
}
