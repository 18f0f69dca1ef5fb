// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/skillpack/cmd/skillpack"

func main() {
	cmd.Execute()
}
