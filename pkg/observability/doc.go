/*
Package observability provides tools for monitoring the converter.

It turns the converter's lifecycle hooks into Prometheus metrics: conversion
counts by format and outcome, conversion latency, machine sizes and document
cache hit ratios.
*/
package observability
