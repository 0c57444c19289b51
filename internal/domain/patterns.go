package domain

import (
	"regexp"

	m "codelens.dev/pkg/codelens/internal/model"
)

// Tier selects which part of the rule table a rule belongs to.
type Tier int

// Rule tiers.
const (
	// TierDemographic rules record one match per regex hit.
	TierDemographic Tier = iota
	// TierIntegration rules record one match per sub-type per line.
	TierIntegration
	// TierJava rules behave like TierIntegration but only run on .java files.
	TierJava
)

func (t Tier) String() string {
	switch t {
	case TierDemographic:
		return "demographic"
	case TierIntegration:
		return "integration"
	case TierJava:
		return "java"
	default:
		return "unknown"
	}
}

// Rule is one entry of the pattern table. Demographic rules carry a Category,
// the other tiers carry a PatternType and SubType.
type Rule struct {
	Tier        Tier
	Category    m.Category
	PatternType m.PatternType
	SubType     string
	Expr        *regexp.Regexp
}

// ID returns a stable identifier for the rule, e.g. "demographic/contact" or
// "java/messaging/kafka".
func (r Rule) ID() string {
	if r.Tier == TierDemographic {
		return r.Tier.String() + "/" + string(r.Category)
	}

	return r.Tier.String() + "/" + string(r.PatternType) + "/" + r.SubType
}

// JavaExtension is the extension that enables the Java tier.
const JavaExtension = ".java"

func demographic(c m.Category, expr string) Rule {
	return Rule{Tier: TierDemographic, Category: c, Expr: regexp.MustCompile("(?i)" + expr)}
}

func integration(tier Tier, p m.PatternType, sub, expr string) Rule {
	return Rule{Tier: tier, PatternType: p, SubType: sub, Expr: regexp.MustCompile("(?i)" + expr)}
}

// DefaultRules is the built-in pattern table. All expressions are matched
// case-insensitively.
var DefaultRules = []Rule{
	demographic(m.CategoryID, `\b(customerId|cm_15)\b`),
	demographic(m.CategoryName, `\b(first_name|last_name|full_name|name|amount)\b`),
	demographic(m.CategoryAddress, `\b(address|street|city|state|zip|postal_code)\b`),
	demographic(m.CategoryContact, `\b(phone|email|contact)\b`),
	demographic(m.CategoryIdentity, `\b(ssn|social_security|tax_id|passport)\b`),
	demographic(m.CategoryDemographics, `\b(age|gender|dob|date_of_birth|nationality|ethnicity)\b`),

	integration(TierIntegration, m.PatternRESTAPI, "http_methods", `\b(get|post|put|delete|patch)\b.*\b(api|endpoint)\b`),
	integration(TierIntegration, m.PatternRESTAPI, "url_patterns", `https?://[^\s<>"]+|www\.[^\s<>"]+`),
	integration(TierIntegration, m.PatternRESTAPI, "api_endpoints", `@RequestMapping|@GetMapping|@PostMapping|@PutMapping|@DeleteMapping`),

	integration(TierIntegration, m.PatternSOAPServices, "soap_components", `\b(soap|wsdl|xml)\b`),
	integration(TierIntegration, m.PatternSOAPServices, "wsdl", `wsdl|WSDL|\.wsdl|getWSDL|WebService[Client]?`),
	integration(TierIntegration, m.PatternSOAPServices, "soap_operations", `SOAPMessage|SOAPEnvelope|SOAPBody|SOAPHeader|SoapClient|SoapBinding`),
	integration(TierIntegration, m.PatternSOAPServices, "xml_namespaces", `xmlns[:=]|namespace|schemaLocation`),
	integration(TierIntegration, m.PatternSOAPServices, "soap_annotations", `@WebService|@WebMethod|@SOAPBinding|@WebResult|@WebParam`),
	integration(TierIntegration, m.PatternSOAPServices, "soap_endpoints", `endpoint[_\s]?url|service[_\s]?url|wsdl[_\s]?url`),

	integration(TierIntegration, m.PatternDatabase, "sql_operations", `\b(select|insert|update|delete)\s+from|into\b`),
	integration(TierIntegration, m.PatternDatabase, "db_connections", `jdbc:|connection[_\s]?string|database[_\s]?url`),

	integration(TierIntegration, m.PatternMessaging, "kafka", `kafka|producer|consumer|topic`),
	integration(TierIntegration, m.PatternMessaging, "rabbitmq", `rabbitmq|amqp`),
	integration(TierIntegration, m.PatternMessaging, "jms", `jms|queue|topic`),

	integration(TierIntegration, m.PatternFile, "file_operations", `\b(csv|excel|xlsx|json|properties).*(read|write|load|save)\b`),

	integration(TierJava, m.PatternSpringEndpoints, "rest_endpoints", `@(RestController|RequestMapping|GetMapping|PostMapping|PutMapping|DeleteMapping)`),
	integration(TierJava, m.PatternSpringEndpoints, "feign_clients", `@FeignClient`),
	integration(TierJava, m.PatternSpringEndpoints, "eureka_client", `@EnableEurekaClient|@EnableDiscoveryClient`),

	integration(TierJava, m.PatternMessaging, "jms", `@JmsListener|MessageListener|JmsTemplate`),
	integration(TierJava, m.PatternMessaging, "kafka", `@KafkaListener|KafkaTemplate|@EnableKafka`),
	integration(TierJava, m.PatternMessaging, "rabbitmq", `@RabbitListener|RabbitTemplate|@EnableRabbit`),

	integration(TierJava, m.PatternSecurity, "spring_security", `@EnableWebSecurity|@Secured|@PreAuthorize`),
	integration(TierJava, m.PatternSecurity, "jwt", `JwtToken|JwtUtils|SecurityContextHolder`),
	integration(TierJava, m.PatternSecurity, "credentials", `password\s*=|secret\s*=|key\s*=`),

	integration(TierJava, m.PatternDatabase, "jpa", `@Entity|@Repository|@Transactional`),
	integration(TierJava, m.PatternDatabase, "sql_queries", `@Query|createQuery|createNativeQuery`),
}

// DefaultExtensions is the built-in allow-list of scanned file extensions.
var DefaultExtensions = []string{".py", ".java", ".js", ".ts", ".cs", ".php", ".rb", ".xsd", ".xml", ".properties"}

// DefaultTestMarkers are the case-insensitive path fragments that identify
// test files.
var DefaultTestMarkers = []string{"test_", "_test.", "/tests/", "/test/"}
