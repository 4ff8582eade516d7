package io

import "errors"

var errIsDir = errors.New("is a directory")
