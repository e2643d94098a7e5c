// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command thriftprobe prints and checks thrift client stacks.
package main

func main() {
	Execute()
}
