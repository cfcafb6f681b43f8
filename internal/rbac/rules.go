package rbac

// Default policy. Students own the quiz-taking and chat surfaces; admins
// additionally manage courses and see everyone's attempts.
var RolePermissions = map[string][]string{
	"student": {
		"course:list",
		"quiz:generate",
		"quiz:view",
		"attempt:create",
		"attempt:answer",
		"attempt:submit",
		"attempt:view-own",
		"chat:use",
		"stats:view-own",
	},
	"admin": {
		"*", // everything
	},
}
