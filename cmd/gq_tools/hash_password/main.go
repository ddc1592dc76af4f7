package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/2beens/gymquest/tools"
)

// reads a password from stdin and prints its bcrypt hash
func main() {
	fmt.Fprint(os.Stderr, "password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && password == "" {
		fmt.Fprintf(os.Stderr, "read password: %s\n", err)
		os.Exit(1)
	}

	hash, err := tools.HashAdminPassword(strings.TrimRight(password, "\r\n"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %s\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
