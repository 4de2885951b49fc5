package main

import "github/chapool/evm-wallet/cmd"

func main() {
	cmd.Execute()
}
