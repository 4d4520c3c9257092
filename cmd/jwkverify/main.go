// Command jwkverify validates RS256 JSON Web Tokens against a JSON Web
// Key Set.
package main

import "github.com/mvandergrift/alcoholic-jwt/internal/cmd"

func main() {
	cmd.Execute()
}
