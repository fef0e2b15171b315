// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It wires the key provider, the credential vault, the call pipeline and the
// session service together, and drives them through the session screen model
// one command per process.
package client
