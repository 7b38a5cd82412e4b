// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package feed fetches branch binary package listings from the ALT Linux
// repository database API.
//
// A listing is requested as GET {api}/{branch}?arch={arch}. The response is
// an object whose "packages" array holds the records; any other keys are
// ignored. A response without a "packages" key is an empty listing.
//
// Requests are retried on connection errors and 5xx responses. Raw response
// bodies are cached on disk through cacheutil, keyed by the request URL, so
// repeated runs within the cache lifetime do not hit the network.
package feed
