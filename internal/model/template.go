package model

// Default code templates, keyed by language tag.
//
// This is pure data, not behaviour: every new session starts from the
// template for its language so the editor is never empty. Each template
// ends with an identity `solution` function and a self-test that prints
// "Hello, World!" so the first "run" always produces visible output.
//
// The map is package-level and never mutated after init — safe for
// concurrent reads without locking.
var defaultCode = map[string]string{
	"javascript": "// Welcome to the coding interview!\n// Write your solution below.\n\nfunction solution(input) {\n  // Your code here\n  return input;\n}\n\n// Test your solution\nconsole.log(solution(\"Hello, World!\"));\n",
	"typescript": "// Welcome to the coding interview!\n// Write your solution below.\n\nfunction solution(input: string): string {\n  // Your code here\n  return input;\n}\n\n// Test your solution\nconsole.log(solution(\"Hello, World!\"));\n",
	"python":     "# Welcome to the coding interview!\n# Write your solution below.\n\ndef solution(input):\n    # Your code here\n    return input\n\n# Test your solution\nprint(solution(\"Hello, World!\"))\n",
	"java":       "// Welcome to the coding interview!\n// Write your solution below.\n\npublic class Solution {\n    public static String solution(String input) {\n        // Your code here\n        return input;\n    }\n    \n    public static void main(String[] args) {\n        System.out.println(solution(\"Hello, World!\"));\n    }\n}\n",
	"cpp":        "// Welcome to the coding interview!\n// Write your solution below.\n\n#include <iostream>\n#include <string>\nusing namespace std;\n\nstring solution(string input) {\n    // Your code here\n    return input;\n}\n\nint main() {\n    cout << solution(\"Hello, World!\") << endl;\n    return 0;\n}\n",
}

// DefaultLanguage is used when a create-session request omits the language.
const DefaultLanguage = "javascript"

// DefaultCode returns the starter template for the given language.
//
// Unknown languages are NOT an error — they silently fall back to the
// javascript template. The session still stores whatever language string
// the caller sent; only the starter code falls back.
func DefaultCode(language string) string {
	if code, ok := defaultCode[language]; ok {
		return code
	}
	return defaultCode[DefaultLanguage]
}
